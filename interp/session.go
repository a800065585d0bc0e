package interp

import (
	"errors"

	"github.com/rs/zerolog"
)

//
// NewSession binds a terminal and a file provider to a fresh variable
// store.  Zero valued options fall back to the defaults
//

func NewSession(term Terminal, files Files, opts Options) *Session {

	def := DefaultOptions()

	if opts.AcceptMaxLen <= 0 {
		opts.AcceptMaxLen = def.AcceptMaxLen
	}

	if opts.StackDepth <= 0 {
		opts.StackDepth = def.StackDepth
	}

	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = def.WaitTimeout
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = def.PollInterval
	}

	if opts.Now == nil {
		opts.Now = def.Now
	}

	if opts.Sleep == nil {
		opts.Sleep = def.Sleep
	}

	s := &Session{
		term:  term,
		files: files,
		opts:  opts,
		log:   opts.Logger,
		vars:  NewVars(),
	}

	s.vars.log = opts.Logger

	s.initializeRun()

	return s
}

func (s *Session) Vars() *Vars {

	return s.vars
}

func (s *Session) Program() *Program {

	return s.prog
}

func (s *Session) Accept() string {

	return s.accept
}

func (s *Session) Match() bool {

	return s.match
}

//
// Steps is the number of instructions dispatched by the last Run
//

func (s *Session) Steps() int64 {

	return s.steps
}

//
// Reset drops every variable and any leftover execution state
//

func (s *Session) Reset() {

	s.vars.Clear()

	s.initializeRun()
}

//
// Interrupt asks a running program to stop before its next
// instruction.  It may be called from any goroutine
//

func (s *Session) Interrupt() {

	s.interrupted.Store(true)
}

//
// Line is the 1-based line the program counter is on
//

func (s *Session) Line() int {

	return s.pc + 1
}

func (s *Session) SetLogger(log zerolog.Logger) {

	s.log = log
	s.vars.log = log
}

//
// Execution state that does not survive from one run to the next.
// Variables are left alone, so a program may be rerun against the
// values a previous run left behind
//

func (s *Session) initializeRun() {

	s.pc = 0
	s.running = false
	s.accept = ""
	s.match = false
	s.routines = s.routines[:0]
	s.escapeEnabled = s.opts.EscapeEnabled
	s.escapeLabel = ""
	s.acceptMaxLen = s.opts.AcceptMaxLen
	s.err = nil
}

//
// Run executes prog from its first instruction until END, a soft stop
// or the first runtime error.  The error returned, if any, is an *Error
//

func (s *Session) Run(prog *Program) error {

	s.prog = prog

	s.initializeRun()

	s.steps = 0
	s.running = true
	s.interrupted.Store(false)

	for s.running && s.err == nil {
		if s.interrupted.Swap(false) {
			s.running = false
			return ErrInterrupted
		}

		s.step()
	}

	s.running = false

	if s.err != nil {
		return s.err
	}

	return nil
}

func (s *Session) step() {

	if s.pc < 0 || s.pc >= len(s.prog.Instructions) {
		s.runtimeError(errors.New(EPCRANGE))
		return
	}

	ins := s.prog.Instructions[s.pc]

	s.steps++

	s.log.Trace().
		Int("pc", s.pc).
		Int("line", ins.Line).
		Stringer("opcode", ins.Op).
		Bool("match", s.match).
		Msg(ins.Text)

	if ins.Op == opNone {
		s.pc++
		return
	}

	ok, err := s.condition(ins.Cond)
	if err != nil {
		s.runtimeError(err)
		return
	}

	if !ok {
		s.pc++
		return
	}

	next, err := s.execute(ins)

	switch {
	case err == nil:
		s.pc = next

	case errors.Is(err, errHalt):
		s.running = false

	case errors.Is(err, ErrInterrupted):
		// the run loop stops on the pending request

	default:
		s.runtimeError(err)
	}
}

func (s *Session) condition(cond Condition) (bool, error) {

	switch cond.Kind {
	case CondYes:
		return s.match, nil

	case CondNo:
		return !s.match, nil

	case CondVar:
		val, ok := s.vars.Numeric(cond.Var)
		if !ok {
			return false, itemError(EVARNOTFOUND, cond.Var)
		}

		return val != 0, nil
	}

	return true, nil
}

//
// Record the first runtime error.  An *Error that is already formed
// (a syntax error in a chained program) is kept as it is
//

func (s *Session) runtimeError(err error) {

	if s.err != nil {
		return
	}

	var perr *Error
	if errors.As(err, &perr) {
		s.err = perr
		return
	}

	s.err = &Error{Kind: RuntimeError, Line: s.pc + 1, Msg: err.Error()}
}
