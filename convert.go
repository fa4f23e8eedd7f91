package bnf

// Convert parses BNF source and expands every rule block through a fresh
// Engine. On any error the returned grammar is nil, never a partial result.
func Convert(data []byte, opts ...Option) (*Grammar, error) {
	return ConvertNamed("", data, opts...)
}

// ConvertString is Convert for string input.
func ConvertString(src string, opts ...Option) (*Grammar, error) {
	return ConvertNamed("", []byte(src), opts...)
}

// ConvertNamed is like Convert but records filename in error positions.
func ConvertNamed(filename string, data []byte, opts ...Option) (*Grammar, error) {
	file, err := ParseNamed(filename, data)
	if err != nil {
		return nil, err
	}

	return ConvertFile(file, opts...)
}

// ConvertFile expands an already parsed file.
func ConvertFile(file *File, opts ...Option) (*Grammar, error) {
	e := NewEngine(opts...)

	for _, r := range file.Rules {
		err := e.AddRule(r)
		if err != nil {
			return nil, err
		}
	}

	return e.Grammar(), nil
}
