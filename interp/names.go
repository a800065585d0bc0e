package interp

//
// A name is a sigil followed by one or more upper case letters or
// digits.  The sigil picks the namespace: '*' labels, '#' numeric
// variables and '$' string variables
//

func validName(name string, sigil byte) bool {

	if len(name) < 2 || name[0] != sigil {
		return false
	}

	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !(ch >= 'A' && ch <= 'Z') && !(ch >= '0' && ch <= '9') {
			return false
		}
	}

	return true
}

func ValidLabel(name string) bool {

	return validName(name, labelSigil)
}

func ValidNumericVar(name string) bool {

	return validName(name, numericSigil)
}

func ValidStringVar(name string) bool {

	return validName(name, stringSigil)
}

func validVar(name string) bool {

	return ValidNumericVar(name) || ValidStringVar(name)
}

//
// headToken returns the text up to the first whitespace character
//

func headToken(s string) string {

	for i := 0; i < len(s); i++ {
		if isBlank(s[i]) {
			return s[:i]
		}
	}

	return s
}

func isBlank(ch byte) bool {

	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}
