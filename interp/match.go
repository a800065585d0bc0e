package interp

import (
	"errors"
	"strings"
)

//
// Test one candidate against the upper cased accept buffer.  Blanks
// around the candidate anchor it:
//
//	" YES "  exact
//	" YES"   accept ends with YES
//	"YES "   accept starts with YES
//	"YES"    accept contains YES
//
// A single character candidate is always a containment test
//

func matchCandidate(accept string, tok string) bool {

	tok = strings.ToUpper(tok)

	if len(tok) < 2 {
		return strings.Contains(accept, tok)
	}

	leading := tok[0] == ' '
	trailing := tok[len(tok)-1] == ' '

	switch {
	case leading && trailing:
		return accept == strings.Trim(tok, " ")

	case leading:
		return strings.HasSuffix(accept, strings.TrimLeft(tok, " "))

	case trailing:
		return strings.HasPrefix(accept, strings.TrimRight(tok, " "))
	}

	return strings.Contains(accept, tok)
}

//
// M and MC set the match flag from the first candidate that fits.
// The list comes from the body, or from a string variable when the
// body names one
//

func (s *Session) executeMatch(ins *Instruction, sep string) (int, error) {

	s.match = false

	body := strings.TrimSpace(ins.Body)
	if body == "" {
		return s.pc, errors.New(EMISSINGMATCH)
	}

	list := ins.Body

	if body[0] == stringSigil {
		val, ok := s.vars.String(body)
		if !ok {
			return s.pc, itemError(EVARNOTFOUND, body)
		}

		list = val
	}

	accept := strings.ToUpper(s.accept)

	for _, tok := range strings.Split(list, sep) {
		if tok == "" {
			continue
		}

		if matchCandidate(accept, tok) {
			s.match = true
			break
		}
	}

	return s.pc + 1, nil
}
