package interp

import (
	"strings"
)

func isSigil(ch byte) bool {

	return ch == numericSigil || ch == stringSigil
}

//
// Expand a text body for T and TNR.  A doubled sigil yields one literal
// sigil, a single sigil starts a variable reference running up to the
// next whitespace character.
//
//	T:##       -> #
//	T:#NUMBER  -> value of #NUMBER
//	T:###NUM   -> # followed by the value of #NUM
//	T:##NUM    -> #NUM
//

func (v *Vars) Format(text string) (string, error) {

	var sb strings.Builder

	for idx := 0; idx < len(text); {
		ch := text[idx]

		if !isSigil(ch) {
			sb.WriteByte(ch)
			idx++
			continue
		}

		if idx == len(text)-1 {
			return "", itemError(EMISSINGLABEL, string(ch))
		}

		if text[idx+1] == ch {
			sb.WriteByte(ch)
			idx += 2
			continue
		}

		end := idx
		for end < len(text) && !isBlank(text[end]) {
			end++
		}

		name := text[idx:end]
		if !validVar(name) {
			return "", itemError(EINVALIDVARFORMAT, name)
		}

		val, ok := v.Lookup(name)
		if !ok {
			return "", itemError(EVARNOTFOUND, name)
		}

		sb.WriteString(val)
		idx = end
	}

	return sb.String(), nil
}
