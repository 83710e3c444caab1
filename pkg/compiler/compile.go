package compiler

// Compile runs the full pipeline over one source buffer and returns the
// generated assembly text. Each call builds its own context, so
// concurrent compilations are independent.
func Compile(src string) (string, error) {
	tokens, err := Scan(src)
	if err != nil {
		return "", err
	}

	if err := Classify(tokens); err != nil {
		return "", err
	}

	an, err := Analyze(tokens)
	if err != nil {
		return "", err
	}

	return Generate(tokens, an)
}
