package bnf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rlch/bnf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadConfigFile_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".bnf2bison.yaml")
	writeFile(t, path, `
start: GQL-program
output: gql.y
prologue: |
  %define api.pure full
omit_tokens: true
list_suffix: _seq
max_alternatives: 512
files:
  "session/*.bnf": session activity
`)

	cfg, err := bnf.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, &bnf.Config{
		Start:           "GQL-program",
		Output:          "gql.y",
		Prologue:        "%define api.pure full\n",
		OmitTokens:      true,
		ListSuffix:      "_seq",
		MaxAlternatives: 512,
		Files:           map[string]string{"session/*.bnf": "session activity"},
	}, cfg)
}

func TestLoadConfigFile_TOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bnf2bison.toml")
	writeFile(t, path, `
start = "GQL-program"
omit_comments = true
max_alternatives = 64

[files]
"session/*.bnf" = "session activity"
`)

	cfg, err := bnf.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "GQL-program", cfg.Start)
	assert.True(t, cfg.OmitComments)
	assert.Equal(t, 64, cfg.MaxAlternatives)
	assert.Equal(t, "session activity", cfg.StartFor("session/a.bnf"))
	assert.Equal(t, "GQL-program", cfg.StartFor("other.bnf"))
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".bnf2bison.yaml")
	writeFile(t, path, "start: [unclosed\n")

	_, err := bnf.LoadConfigFile(path)
	require.Error(t, err)

	_, err = bnf.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindConfig_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".bnf2bison.yml"), "start: top\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := bnf.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".bnf2bison.yml"), path)

	cfg, err := bnf.LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, "top", cfg.Start)
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	cfg := &bnf.Config{
		Start:           "<a>",
		Prologue:        "%{ %}",
		OmitTokens:      true,
		ListSuffix:      "_many",
		MaxAlternatives: 1,
	}

	assert.Equal(t, bnf.RenderOptions{
		Start:      "<a>",
		Prologue:   "%{ %}",
		OmitTokens: true,
	}, cfg.RenderOptions("x.bnf"))

	g, err := bnf.ConvertString("<a> ::= B...", cfg.EngineOptions()...)
	require.NoError(t, err)
	assert.True(t, g.Has("B_many"))

	_, err = bnf.ConvertString("<a> ::= B | C", cfg.EngineOptions()...)
	require.ErrorIs(t, err, bnf.ErrTooManyAlternatives)
}
