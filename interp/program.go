package interp

import (
	"errors"
	"fmt"
)

//
// List numbers source lines for display, e.g. "007|T:HELLO"
//

func List(lines []string) []string {

	ret := make([]string, 0, len(lines))

	for idx, line := range lines {
		ret = append(ret, fmt.Sprintf("%03d|%s", idx+1, line))
	}

	return ret
}

//
// List is the read-only projection of a parsed image back to numbered
// source text
//

func (p *Program) List() []string {

	lines := make([]string, 0, len(p.Instructions))

	for _, ins := range p.Instructions {
		lines = append(lines, ins.Text)
	}

	return List(lines)
}

func (p *Program) lookupLabel(label string) (int, error) {

	if label == "" {
		return 0, errors.New(EMISSINGLABEL)
	}

	pc, ok := p.Labels[label]
	if !ok {
		return 0, itemError(ELABELNOTFOUND, label)
	}

	return pc, nil
}
