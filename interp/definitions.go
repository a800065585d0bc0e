package interp

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

//
// Constants
//

const defaultStackDepth = 512

const defaultAcceptMaxLen = 80

const defaultWaitTimeout = 6 * time.Second

const defaultPollInterval = 100 * time.Millisecond

const timeoutMarker = "TIMEOUT"

const invalidInputMsg = "WARNING : invalid input"

const screenCols = 80
const screenRows = 25

const labelSigil = '*'
const numericSigil = '#'
const stringSigil = '$'

const instructionSeparator = ':'

const matchSeparator = ","
const matchCaseSeparator = "^"

//
// Keys reported by Terminal.ReadKey
//

const (
	KeyEscape = rune(27)
	KeyEnter  = '\r'
	KeyNL     = '\n'
)

//
// The closed opcode vocabulary.  opNone marks a blank or label-only
// line
//

type Opcode int

const (
	opNone Opcode = iota
	OpA
	OpBell
	OpC
	OpCase
	OpCh
	OpClrs
	OpCur
	OpDef
	OpDi
	OpE
	OpEi
	OpEnd
	OpErastr
	OpEsc
	OpHold
	OpInmax
	OpJ
	OpLf
	OpM
	OpMc
	OpR
	OpReset
	OpSave
	OpT
	OpTnr
	OpU
	OpWait
	opLast
)

var opcodeNames = [...]string{
	opNone:   "",
	OpA:      "A",
	OpBell:   "BELL",
	OpC:      "C",
	OpCase:   "CASE",
	OpCh:     "CH",
	OpClrs:   "CLRS",
	OpCur:    "CUR",
	OpDef:    "DEF",
	OpDi:     "DI",
	OpE:      "E",
	OpEi:     "EI",
	OpEnd:    "END",
	OpErastr: "ERASTR",
	OpEsc:    "ESC",
	OpHold:   "HOLD",
	OpInmax:  "INMAX",
	OpJ:      "J",
	OpLf:     "LF",
	OpM:      "M",
	OpMc:     "MC",
	OpR:      "R",
	OpReset:  "RESET",
	OpSave:   "SAVE",
	OpT:      "T",
	OpTnr:    "TNR",
	OpU:      "U",
	OpWait:   "WAIT",
}

var opcodeMap map[string]Opcode

func init() {

	opcodeMap = make(map[string]Opcode)

	for op := opNone + 1; op < opLast; op++ {
		opcodeMap[opcodeNames[op]] = op
	}
}

func (op Opcode) String() string {

	if op < opNone || op >= opLast {
		return "?"
	}

	return opcodeNames[op]
}

//
// LookupOpcode maps an opcode token to its Opcode.  Matching is
// exact, so lower or mixed case tokens are not found
//

func LookupOpcode(tok string) (Opcode, bool) {

	op, ok := opcodeMap[tok]

	return op, ok
}

type CondKind int

const (
	CondNone CondKind = iota
	CondYes
	CondNo
	CondVar
)

//
// Condition guarding an instruction: Y/N test the match flag, CondVar
// tests a numeric variable for a non-zero value
//

type Condition struct {
	Kind CondKind
	Var  string
}

type Instruction struct {
	Label string
	Op    Opcode
	Cond  Condition
	Body  string
	Text  string
	Line  int
}

//
// Program is the parsed image: instructions indexed by program counter
// and the label table
//

type Program struct {
	Instructions []*Instruction
	Labels       map[string]int
}

//
// Terminal is the console capability the engine drives.  ReadLine and
// ReadKey return ErrEscape when the escape key interrupts them.
// SetCursor returns ErrUnsupported where the terminal cannot address
// cells
//

type Terminal interface {
	Write(s string) error
	ReadLine(maxLen int) (string, error)
	KeyAvailable() bool
	ReadKey() (rune, error)
	ClearScreen() error
	SetCursor(col, row int) error
	Bell() error
}

//
// Files loads and stores program source, one line per element
//

type Files interface {
	ReadLines(name string) ([]string, error)
	WriteLines(name string, lines []string) error
	Exists(name string) bool
}

//
// Options configures a Session.  Now and Sleep drive the WAIT timeout
// and may be replaced for tests
//

type Options struct {
	AcceptMaxLen  int
	StackDepth    int
	WaitTimeout   time.Duration
	PollInterval  time.Duration
	EscapeEnabled bool
	Logger        zerolog.Logger
	Now           func() time.Time
	Sleep         func(time.Duration)
}

func DefaultOptions() Options {

	return Options{
		AcceptMaxLen:  defaultAcceptMaxLen,
		StackDepth:    defaultStackDepth,
		WaitTimeout:   defaultWaitTimeout,
		PollInterval:  defaultPollInterval,
		EscapeEnabled: true,
		Logger:        zerolog.Nop(),
		Now:           time.Now,
		Sleep:         time.Sleep,
	}
}

//
// Session owns everything a running program touches.  It is mutated
// only by its own run loop
//

type Session struct {
	term  Terminal
	files Files
	opts  Options
	log   zerolog.Logger

	prog *Program
	vars *Vars

	pc            int
	running       bool
	accept        string
	match         bool
	routines      []int
	escapeEnabled bool
	escapeLabel   string
	acceptMaxLen  int
	err           *Error
	steps         int64
	interrupted   atomic.Bool
}
