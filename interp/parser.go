package interp

import (
	"strings"
)

//
// The parser records the first syntax error it sees and ignores any
// later ones.  parseLine always hands back an instruction, possibly
// partial, and the caller checks p.err to decide whether to go on
//

type parser struct {
	line int
	err  *Error
}

func (p *parser) syntaxError(msg string) {

	if p.err == nil {
		p.err = &Error{Kind: SyntaxError, Line: p.line, Msg: msg}
	}
}

func (p *parser) parseLine(text string) *Instruction {

	ins := &Instruction{Text: text, Line: p.line}

	str := strings.TrimLeft(text, " \t\r\n\v\f")

	if strings.TrimSpace(str) == "" {
		return ins
	}

	//
	// Label line.  The label has to be well formed and alone on the line
	//

	if str[0] == labelSigil {
		token := headToken(str)

		if !ValidLabel(token) {
			p.syntaxError(EINVALIDLABEL)
			return ins
		}

		if token != strings.TrimRight(str, " \t\r\n\v\f") {
			p.syntaxError(ELABELMISMATCH)
			return ins
		}

		ins.Label = token

		return ins
	}

	end := strings.IndexByte(str, instructionSeparator)
	if end < 0 {
		p.syntaxError(EMISSINGSEPARATOR)
		return ins
	}

	head := strings.TrimRight(str[:end], " \t")
	if head == "" {
		p.syntaxError(EMISSINGTYPE)
		return ins
	}

	head, ins.Cond = p.parseCondition(head)
	if p.err != nil {
		return ins
	}

	for i := 0; i < len(head); i++ {
		if head[i] < 'A' || head[i] > 'Z' {
			p.syntaxError(EINVALIDFORMAT)
			return ins
		}
	}

	op, ok := LookupOpcode(head)
	if !ok {
		p.syntaxError(itemError(EUNKNOWNINSTRUCTION, head).Error())
		return ins
	}

	ins.Op = op
	ins.Body = str[end+1:]

	return ins
}

//
// Split an optional condition off the opcode token.  A trailing
// "(#NAME)" is a variable condition, otherwise a trailing Y or N (on
// a token longer than one character) tests the match flag
//

func (p *parser) parseCondition(head string) (string, Condition) {

	var cond Condition

	if strings.HasSuffix(head, ")") {
		open := strings.LastIndexByte(head, '(')
		if open < 1 {
			p.syntaxError(EINVALIDCONDITION)
			return head, cond
		}

		name := head[open+1 : len(head)-1]
		if !ValidNumericVar(name) {
			p.syntaxError(itemError(EINVALIDCONDITION, name).Error())
			return head, cond
		}

		cond.Kind = CondVar
		cond.Var = name

		return head[:open], cond
	}

	if len(head) > 1 {
		switch head[len(head)-1] {
		case 'Y':
			cond.Kind = CondYes
			head = head[:len(head)-1]

		case 'N':
			cond.Kind = CondNo
			head = head[:len(head)-1]
		}
	}

	return head, cond
}

//
// Parse builds the program image from source lines.  Parsing stops at
// the first syntax error, and no image is returned in that case
//

func Parse(lines []string) (*Program, error) {

	p := &parser{}

	prog := &Program{Labels: make(map[string]int)}

	for idx, text := range lines {
		p.line = idx + 1

		ins := p.parseLine(text)
		if p.err != nil {
			return nil, p.err
		}

		if ins.Label != "" {
			if _, dup := prog.Labels[ins.Label]; dup {
				p.syntaxError(itemError(EDUPLICATELABEL, ins.Label).Error())
				return nil, p.err
			}

			prog.Labels[ins.Label] = idx
		}

		prog.Instructions = append(prog.Instructions, ins)
	}

	return prog, nil
}
