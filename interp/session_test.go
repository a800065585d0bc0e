package interp_test

import (
	"fmt"
	"testing"

	"github.com/garyluck/pilot/interp"
	"github.com/garyluck/pilot/test"
)

func TestHello(t *testing.T) {

	term := &fakeTerm{}

	s, err := runProgram(t, term,
		"*START",
		"T:HELLO",
		"C:#X=2+3*4",
		"T:#X",
		"END:",
	)

	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "HELLO\n14\n")
	test.ExpectEquality(t, s.Steps(), int64(5))

	x, ok := s.Vars().Numeric("#X")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, x, float32(14))
}

func TestFallOffEnd(t *testing.T) {

	_, err := runProgram(t, &fakeTerm{}, "T:A")

	expectRuntimeError(t, err, 2, interp.EPCRANGE)
	test.ExpectEquality(t, err.Error(), "RUNTIME ERROR : 002|Program counter out of range")
}

func TestJump(t *testing.T) {

	term := &fakeTerm{}

	_, err := runProgram(t, term, "J:*SKIP", "T:NO", "*SKIP", "T:YES", "END:")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "YES\n")

	_, err = runProgram(t, &fakeTerm{}, "R:remark", "J: *NOPE ")
	expectRuntimeError(t, err, 2, "Label not found : *NOPE")

	_, err = runProgram(t, &fakeTerm{}, "J:")
	expectRuntimeError(t, err, 1, interp.EMISSINGLABEL)
}

func TestCallReturn(t *testing.T) {

	term := &fakeTerm{}

	_, err := runProgram(t, term,
		"U:*SUB",
		"T:BACK",
		"END:",
		"*SUB",
		"T:IN",
		"E:",
	)

	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "IN\nBACK\n")

	_, err = runProgram(t, &fakeTerm{}, "E:")
	expectRuntimeError(t, err, 1, interp.ESTACKUNDERFLOW)
}

//
// A routine that calls itself until #N reaches #LIMIT
//

func recursion(limit int) []string {

	return []string{
		"C:#N=0",
		fmt.Sprintf("C:#LIMIT=%d", limit),
		"U:*REC",
		"T:#N",
		"END:",
		"*REC",
		"C:#N=#N+1",
		"C:#MORE=#LIMIT-#N",
		"U(#MORE):*REC",
		"E:",
	}
}

func TestCallDepth(t *testing.T) {

	term := &fakeTerm{}

	_, err := runProgram(t, term, recursion(512)...)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "512\n")

	_, err = runProgram(t, &fakeTerm{}, recursion(513)...)
	expectRuntimeError(t, err, 9, interp.ESTACKOVERFLOW)
}

func TestCase(t *testing.T) {

	tests := []struct {
		value string
		out   string
	}{
		{"0-5", "A"},
		{"0", "A"},
		{"1", "A"},
		{"2", "B"},
		{"2.7", "B"},
		{"3", "C"},
		{"99", "C"},
	}

	for _, tc := range tests {
		term := &fakeTerm{}

		_, err := runProgram(t, term,
			"C:#S="+tc.value,
			"CASE:#S,*A, *B ,*C",
			"*A", "T:A", "END:",
			"*B", "T:B", "END:",
			"*C", "T:C", "END:",
		)

		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, term.out.String(), tc.out+"\n")
	}

	term := &fakeTerm{}
	_, err := runProgram(t, term, "C:#S=2", "CASE:#S *A,*B", "*A", "T:A", "END:", "*B", "T:B", "END:")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "B\n")

	_, err = runProgram(t, &fakeTerm{}, "CASE:#Q,*A", "*A")
	expectRuntimeError(t, err, 1, "Variable not found : #Q")

	_, err = runProgram(t, &fakeTerm{}, "C:#S=1", "CASE:#S")
	expectRuntimeError(t, err, 2, interp.EMISSINGOPTIONS)

	_, err = runProgram(t, &fakeTerm{}, "C:#S=1", "CASE:#S,*NOPE")
	expectRuntimeError(t, err, 2, "Label not found : *NOPE")

	_, err = runProgram(t, &fakeTerm{}, "CASE:$S,*A", "*A")
	expectRuntimeError(t, err, 1, "Invalid variable : $S")
}

func TestCompute(t *testing.T) {

	term := &fakeTerm{}

	s, err := runProgram(t, term,
		"C:#A=10",
		"C: #B = (#A - 4) / 4 ",
		"C:#C=#A-#B-1",
		"END:",
	)

	test.ExpectSuccess(t, err)

	b, _ := s.Vars().Numeric("#B")
	test.ExpectEquality(t, b, float32(1.5))

	c, _ := s.Vars().Numeric("#C")
	test.ExpectEquality(t, c, float32(7.5))

	tests := []struct {
		line string
		msg  string
	}{
		{"C:#X=1/0", interp.EDIVISIONBYZERO},
		{"C:#X=#Y+1", "Variable not found : #Y"},
		{"C:X=1", "Invalid compute statement : X=1"},
		{"C:#X=", "Invalid compute statement : #X="},
		{"C:", interp.EMISSINGCOMPUTE},
		{"C:#x=1", "Invalid variable format : #x"},
		{"C:#X=(1", "Expression error : Unbalanced parentheses"},
		{"C:#X=1+", "Expression error : Malformed expression"},
	}

	for _, tc := range tests {
		_, err := runProgram(t, &fakeTerm{}, tc.line, "END:")
		expectRuntimeError(t, err, 1, tc.msg)
	}
}

func TestVariableCondition(t *testing.T) {

	term := &fakeTerm{}

	_, err := runProgram(t, term,
		"C:#F=0",
		"T(#F):NO",
		"C:#F=1",
		"T(#F):YES",
		"END:",
	)

	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "YES\n")

	_, err = runProgram(t, &fakeTerm{}, "T(#Z):X")
	expectRuntimeError(t, err, 1, "Variable not found : #Z")
}

func TestBulkClear(t *testing.T) {

	s, err := runProgram(t, &fakeTerm{},
		"DEF:$A hello",
		"C:#N=5",
		"ERASTR:",
		"RESET:",
		"END:",
	)

	test.ExpectSuccess(t, err)

	a, ok := s.Vars().String("$A")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, a, "")

	n, ok := s.Vars().Numeric("#N")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, float32(0))
}

func TestDef(t *testing.T) {

	s, err := runProgram(t, &fakeTerm{}, "DEF: $A  two", "DEF:$B", "END:")
	test.ExpectSuccess(t, err)

	a, _ := s.Vars().String("$A")
	test.ExpectEquality(t, a, " two")

	b, ok := s.Vars().String("$B")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, b, "")

	_, err = runProgram(t, &fakeTerm{}, "DEF:A x")
	expectRuntimeError(t, err, 1, "Invalid variable : A")
}

func TestSave(t *testing.T) {

	term := &fakeTerm{lines: []string{"yes"}}

	_, err := runProgram(t, term, "DEF:$ANS", "A:", "SAVE:$ANS", "T:$ANS", "END:")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "yes\n")

	_, err = runProgram(t, &fakeTerm{}, "SAVE:$NOPE")
	expectRuntimeError(t, err, 1, "Variable not found : $NOPE")
}

func TestText(t *testing.T) {

	term := &fakeTerm{}

	_, err := runProgram(t, term, "TNR:A", "T:", "TNR:B", "LF:2", "T:##1", "END:")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "AB\n\n#1\n")

	_, err = runProgram(t, &fakeTerm{}, "LF:x")
	expectRuntimeError(t, err, 1, "Invalid parameter : x")

	_, err = runProgram(t, &fakeTerm{}, "LF:")
	expectRuntimeError(t, err, 1, interp.EMISSINGPARAM)

	_, err = runProgram(t, &fakeTerm{}, "T:#UNSET")
	expectRuntimeError(t, err, 1, "Variable not found : #UNSET")
}

func TestScreen(t *testing.T) {

	term := &fakeTerm{cursorOK: true}

	_, err := runProgram(t, term, "BELL:", "CLRS:", "CUR: 10, 5", "END:")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.bells, 1)
	test.ExpectEquality(t, term.clears, 1)
	test.ExpectEquality(t, term.col, 10)
	test.ExpectEquality(t, term.row, 5)

	tests := []struct {
		line string
		msg  string
	}{
		{"CUR:80,0", interp.EXRANGE},
		{"CUR:0,25", interp.EYRANGE},
		{"CUR:-1,0", interp.EXRANGE},
		{"CUR:1", "Invalid number of parameters : 1"},
		{"CUR:1,2,3", "Invalid number of parameters : 1,2,3"},
		{"CUR:a,2", "Invalid parameter : a"},
	}

	for _, tc := range tests {
		_, err := runProgram(t, &fakeTerm{cursorOK: true}, tc.line)
		expectRuntimeError(t, err, 1, tc.msg)
	}

	_, err = runProgram(t, &fakeTerm{}, "CUR:0,0")
	expectRuntimeError(t, err, 1, "Cursor positioning not available : not supported on this terminal")
}

func TestChain(t *testing.T) {

	term := &fakeTerm{}
	files := memFiles{
		"next.pil": {"T:IN NEXT", "END:"},
		"bad.pil":  {"T:ok", "oops"},
	}

	s, _ := newSession(term, files)

	err := s.Run(mustParse(t, "DEF:$S x", "CH:next.pil", "T:NEVER"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, term.out.String(), "IN NEXT\n")

	_, ok := s.Vars().String("$S")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, s.Program().List()[0], "001|T:IN NEXT")

	err = s.Run(mustParse(t, "R:", "CH:bad.pil"))
	expectError(t, err, interp.SyntaxError, 2, interp.EMISSINGSEPARATOR)

	tests := []struct {
		line string
		msg  string
	}{
		{"CH:", interp.EFILENAME},
		{"CH:a b", interp.EFILEMISMATCH},
		{"CH:nope.pil", "File not found : nope.pil"},
	}

	for _, tc := range tests {
		err := s.Run(mustParse(t, tc.line))
		expectRuntimeError(t, err, 1, tc.msg)
	}
}

func TestReset(t *testing.T) {

	s, err := runProgram(t, &fakeTerm{}, "C:#N=1", "END:")
	test.ExpectSuccess(t, err)

	err = s.Run(mustParse(t, "C:#N=#N+1", "END:"))
	test.ExpectSuccess(t, err)

	n, _ := s.Vars().Numeric("#N")
	test.ExpectEquality(t, n, float32(2))

	s.Reset()

	_, ok := s.Vars().Numeric("#N")
	test.ExpectFailure(t, ok)
}

//
// Writes made by the running program interrupt it
//

type interruptingTerm struct {
	fakeTerm
	session *interp.Session
}

func (it *interruptingTerm) Write(s string) error {

	it.session.Interrupt()

	return it.fakeTerm.Write(s)
}

func TestInterrupt(t *testing.T) {

	term := &interruptingTerm{}

	s := interp.NewSession(term, memFiles{}, interp.DefaultOptions())
	term.session = s

	err := s.Run(mustParse(t, "*LOOP", "T:TICK", "J:*LOOP"))

	test.ExpectEquality(t, err, interp.ErrInterrupted)
	test.ExpectEquality(t, s.Line(), 3)
	test.ExpectEquality(t, term.out.String(), "TICK\n")

	// a stale request does not stop the next run

	s = interp.NewSession(&fakeTerm{}, memFiles{}, interp.DefaultOptions())
	s.Interrupt()
	test.ExpectSuccess(t, s.Run(mustParse(t, "END:")))
}

func TestLineFeedsInterrupted(t *testing.T) {

	term := &interruptingTerm{}

	s := interp.NewSession(term, memFiles{}, interp.DefaultOptions())
	term.session = s

	err := s.Run(mustParse(t, "LF:4000000000", "END:"))

	test.ExpectEquality(t, err, interp.ErrInterrupted)
	test.ExpectEquality(t, s.Line(), 1)
	test.ExpectEquality(t, term.out.String(), "\n")
}
