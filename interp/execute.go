package interp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/garyluck/pilot/expr"
)

//
// Dispatch one instruction.  Every handler returns the next program
// counter, or an error.  errHalt stops the run without an error
//

func (s *Session) execute(ins *Instruction) (int, error) {

	switch ins.Op {
	case OpA:
		return s.executeAccept(ins)

	case OpBell:
		return s.executeBell()

	case OpC:
		return s.executeCompute(ins)

	case OpCase:
		return s.executeCase(ins)

	case OpCh:
		return s.executeChain(ins)

	case OpClrs:
		return s.executeClrs()

	case OpCur:
		return s.executeCur(ins)

	case OpDef:
		return s.executeDef(ins)

	case OpDi:
		s.escapeEnabled = false
		return s.pc + 1, nil

	case OpE:
		return s.executeReturn()

	case OpEi:
		s.escapeEnabled = true
		return s.pc + 1, nil

	case OpEnd:
		return s.pc, errHalt

	case OpErastr:
		s.vars.EraseStrings()
		return s.pc + 1, nil

	case OpEsc:
		return s.executeEsc(ins)

	case OpHold:
		return s.executeHold(ins)

	case OpInmax:
		return s.executeInmax(ins)

	case OpJ:
		return s.prog.lookupLabel(strings.TrimSpace(ins.Body))

	case OpLf:
		return s.executeLf(ins)

	case OpM:
		return s.executeMatch(ins, matchSeparator)

	case OpMc:
		return s.executeMatch(ins, matchCaseSeparator)

	case OpR:
		return s.pc + 1, nil

	case OpReset:
		s.vars.ResetNumerics()
		return s.pc + 1, nil

	case OpSave:
		return s.executeSave(ins)

	case OpT:
		return s.executeType(ins, true)

	case OpTnr:
		return s.executeType(ins, false)

	case OpU:
		return s.call(strings.TrimSpace(ins.Body))

	case OpWait:
		return s.executeWait(ins)
	}

	return s.pc, itemError(EUNKNOWNINSTRUCTION, ins.Op.String())
}

func (s *Session) write(str string) error {

	if err := s.term.Write(str); err != nil {
		return itemError(ETERMINAL, err.Error())
	}

	return nil
}

//
// U, HOLD and ESC all call into a label the same way: save the current
// program counter on the routine stack and jump
//

func (s *Session) call(label string) (int, error) {

	if len(s.routines) >= s.opts.StackDepth {
		return s.pc, errors.New(ESTACKOVERFLOW)
	}

	target, err := s.prog.lookupLabel(label)
	if err != nil {
		return s.pc, err
	}

	s.routines = append(s.routines, s.pc)

	return target, nil
}

func (s *Session) executeReturn() (int, error) {

	if len(s.routines) == 0 {
		return s.pc, errors.New(ESTACKUNDERFLOW)
	}

	ret := s.routines[len(s.routines)-1]
	s.routines = s.routines[:len(s.routines)-1]

	return ret + 1, nil
}

func (s *Session) executeBell() (int, error) {

	if err := s.term.Bell(); err != nil {
		return s.pc, itemError(ETERMINAL, err.Error())
	}

	return s.pc + 1, nil
}

func (s *Session) executeClrs() (int, error) {

	if err := s.term.ClearScreen(); err != nil {
		return s.pc, itemError(ETERMINAL, err.Error())
	}

	return s.pc + 1, nil
}

//
// C:#VAR=<infix>.  Variables in the expression are replaced by their
// values once it is in postfix form
//

func (s *Session) executeCompute(ins *Instruction) (int, error) {

	str := strings.TrimSpace(ins.Body)

	if str == "" {
		return s.pc, errors.New(EMISSINGCOMPUTE)
	}

	end := strings.IndexByte(str, '=')
	if str[0] != numericSigil || end < 0 || end == len(str)-1 {
		return s.pc, itemError(EINVALIDCOMPUTE, str)
	}

	name := strings.TrimSpace(str[:end])
	if !ValidNumericVar(name) {
		return s.pc, itemError(EINVALIDVARFORMAT, name)
	}

	infix := str[end+1:]
	if strings.TrimSpace(infix) == "" {
		return s.pc, itemError(EINVALIDCOMPUTE, str)
	}

	postfix, err := expr.InfixToPostfix(infix)
	if err != nil {
		return s.pc, itemError(EEXPRESSION, err.Error())
	}

	postfix, err = expr.Substitute(postfix, s.vars.Numeric)
	if err != nil {
		return s.pc, err
	}

	val, err := expr.Evaluate(postfix)
	if errors.Is(err, expr.ErrDivisionByZero) {
		return s.pc, errors.New(EDIVISIONBYZERO)
	} else if err != nil {
		return s.pc, itemError(EEXPRESSION, err.Error())
	}

	if err := s.vars.SetNumeric(name, val); err != nil {
		return s.pc, err
	}

	return s.pc + 1, nil
}

//
// CASE:#VAR,*L1,*L2,...  The selector is one based and clamped to the
// list, so anything below 1 picks the first label and anything past
// the end picks the last.  A blank may stand in for the first comma
//

func (s *Session) executeCase(ins *Instruction) (int, error) {

	str := strings.TrimSpace(ins.Body)

	if str == "" {
		return s.pc, errors.New(EMISSINGPARAM)
	}

	name := str
	rest := ""

	if end := strings.IndexAny(str, ", \t"); end >= 0 {
		name = str[:end]
		rest = strings.TrimLeft(str[end:], " \t")
		rest = strings.TrimPrefix(rest, matchSeparator)
	}

	if !ValidNumericVar(name) {
		return s.pc, itemError(EINVALIDVARIABLE, name)
	}

	val, ok := s.vars.Numeric(name)
	if !ok {
		return s.pc, itemError(EVARNOTFOUND, name)
	}

	if strings.TrimSpace(rest) == "" {
		return s.pc, errors.New(EMISSINGOPTIONS)
	}

	options := strings.Split(rest, matchSeparator)

	sel := float64(val) - 1
	switch {
	case math.IsNaN(sel) || sel < 0:
		sel = 0

	case sel > float64(len(options)-1):
		sel = float64(len(options) - 1)
	}

	return s.prog.lookupLabel(strings.TrimSpace(options[int(sel)]))
}

//
// CH:<file> replaces the running program.  Variables and all execution
// state start over, as if the new program had been loaded and run from
// the shell
//

func (s *Session) executeChain(ins *Instruction) (int, error) {

	str := strings.TrimSpace(ins.Body)

	file := headToken(str)
	if file == "" {
		return s.pc, errors.New(EFILENAME)
	}

	if file != str {
		return s.pc, errors.New(EFILEMISMATCH)
	}

	if s.files == nil || !s.files.Exists(file) {
		return s.pc, itemError(EFILENOTFOUND, file)
	}

	lines, err := s.files.ReadLines(file)
	if err != nil {
		return s.pc, fmt.Errorf("%s : %s : %v", EFILEREAD, file, err)
	}

	prog, err := Parse(lines)
	if err != nil {
		return s.pc, err
	}

	s.log.Debug().Str("file", file).Int("lines", len(lines)).Msg("chain")

	s.vars.Clear()

	s.prog = prog

	s.initializeRun()

	s.running = true

	return 0, nil
}

//
// CUR:x,y positions the cursor on the 80x25 screen
//

func (s *Session) executeCur(ins *Instruction) (int, error) {

	coords := strings.Split(ins.Body, ",")

	if len(coords) != 2 {
		return s.pc, itemError(EPARAMCOUNT, strings.TrimSpace(ins.Body))
	}

	x, err := strconv.Atoi(strings.TrimSpace(coords[0]))
	if err != nil {
		return s.pc, itemError(EINVALIDPARAM, coords[0])
	}

	y, err := strconv.Atoi(strings.TrimSpace(coords[1]))
	if err != nil {
		return s.pc, itemError(EINVALIDPARAM, coords[1])
	}

	if x < 0 || x >= screenCols {
		return s.pc, errors.New(EXRANGE)
	}

	if y < 0 || y >= screenRows {
		return s.pc, errors.New(EYRANGE)
	}

	if err := s.term.SetCursor(x, y); err != nil {
		if errors.Is(err, ErrUnsupported) {
			return s.pc, itemError(ECURSOR, err.Error())
		}

		return s.pc, itemError(ETERMINAL, err.Error())
	}

	return s.pc + 1, nil
}

//
// DEF:$VAR text.  One blank separates the name from the value, any
// further blanks belong to the value
//

func (s *Session) executeDef(ins *Instruction) (int, error) {

	str := strings.TrimLeft(ins.Body, " \t")

	name := headToken(str)
	if !ValidStringVar(name) {
		return s.pc, itemError(EINVALIDVARIABLE, name)
	}

	val := str[len(name):]
	if len(val) > 0 && isBlank(val[0]) {
		val = val[1:]
	}

	if err := s.vars.SetString(name, val); err != nil {
		return s.pc, err
	}

	return s.pc + 1, nil
}

//
// ESC:<label> registers the escape handler.  An empty body removes it
//

func (s *Session) executeEsc(ins *Instruction) (int, error) {

	label := strings.TrimSpace(ins.Body)

	if label == "" {
		s.escapeLabel = ""
		return s.pc + 1, nil
	}

	if !ValidLabel(label) {
		return s.pc, itemError(EINVALIDLABEL, label)
	}

	if _, err := s.prog.lookupLabel(label); err != nil {
		return s.pc, err
	}

	s.escapeLabel = label

	return s.pc + 1, nil
}

func (s *Session) executeInmax(ins *Instruction) (int, error) {

	str := strings.TrimSpace(ins.Body)

	if str == "" {
		return s.pc, errors.New(EMISSINGPARAM)
	}

	n, err := strconv.Atoi(str)
	if err != nil || n < 1 {
		return s.pc, itemError(EINVALIDPARAM, str)
	}

	s.acceptMaxLen = n

	return s.pc + 1, nil
}

func (s *Session) executeLf(ins *Instruction) (int, error) {

	str := strings.TrimSpace(ins.Body)

	if str == "" {
		return s.pc, errors.New(EMISSINGPARAM)
	}

	n, err := strconv.ParseUint(str, 10, 32)
	if err != nil {
		return s.pc, itemError(EINVALIDPARAM, str)
	}

	for range n {
		if s.interrupted.Load() {
			return s.pc, ErrInterrupted
		}

		if err := s.write("\n"); err != nil {
			return s.pc, err
		}
	}

	return s.pc + 1, nil
}

//
// SAVE:$VAR copies the accept buffer into an existing string variable
//

func (s *Session) executeSave(ins *Instruction) (int, error) {

	name := strings.TrimSpace(ins.Body)

	if !ValidStringVar(name) {
		return s.pc, itemError(EINVALIDVARIABLE, name)
	}

	if _, ok := s.vars.String(name); !ok {
		return s.pc, itemError(EVARNOTFOUND, name)
	}

	if err := s.vars.SetString(name, s.accept); err != nil {
		return s.pc, err
	}

	return s.pc + 1, nil
}

//
// T and TNR.  An empty body prints nothing at all
//

func (s *Session) executeType(ins *Instruction, newline bool) (int, error) {

	if ins.Body == "" {
		return s.pc + 1, nil
	}

	str, err := s.vars.Format(ins.Body)
	if err != nil {
		return s.pc, err
	}

	if newline {
		str += "\n"
	}

	if err := s.write(str); err != nil {
		return s.pc, err
	}

	return s.pc + 1, nil
}
