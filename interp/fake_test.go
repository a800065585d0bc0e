package interp_test

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/garyluck/pilot/interp"
	"github.com/garyluck/pilot/test"
)

//
// A scripted terminal.  Queued lines are handed out by ReadLine, a
// line holding escLine reads as the escape key.  KeyAvailable answers
// from avail and says false once it runs dry
//

const escLine = "\x1b"

type fakeTerm struct {
	out      strings.Builder
	lines    []string
	keys     []rune
	avail    []bool
	cursorOK bool
	col      int
	row      int
	bells    int
	clears   int
	reads    []int
}

func (f *fakeTerm) Write(s string) error {

	f.out.WriteString(s)

	return nil
}

func (f *fakeTerm) ReadLine(maxLen int) (string, error) {

	f.reads = append(f.reads, maxLen)

	if len(f.lines) == 0 {
		return "", io.EOF
	}

	line := f.lines[0]
	f.lines = f.lines[1:]

	if line == escLine {
		return "", interp.ErrEscape
	}

	return line, nil
}

func (f *fakeTerm) KeyAvailable() bool {

	if len(f.avail) == 0 {
		return false
	}

	ret := f.avail[0]
	f.avail = f.avail[1:]

	return ret
}

func (f *fakeTerm) ReadKey() (rune, error) {

	if len(f.keys) == 0 {
		return 0, io.EOF
	}

	key := f.keys[0]
	f.keys = f.keys[1:]

	return key, nil
}

func (f *fakeTerm) ClearScreen() error {

	f.clears++

	return nil
}

func (f *fakeTerm) SetCursor(col, row int) error {

	if !f.cursorOK {
		return interp.ErrUnsupported
	}

	f.col, f.row = col, row

	return nil
}

func (f *fakeTerm) Bell() error {

	f.bells++

	return nil
}

type memFiles map[string][]string

func (m memFiles) ReadLines(name string) ([]string, error) {

	lines, ok := m[name]
	if !ok {
		return nil, os.ErrNotExist
	}

	return lines, nil
}

func (m memFiles) WriteLines(name string, lines []string) error {

	m[name] = append([]string(nil), lines...)

	return nil
}

func (m memFiles) Exists(name string) bool {

	_, ok := m[name]

	return ok
}

//
// Clock for WAIT.  Sleeping only moves the time forward
//

type fakeClock struct {
	now    time.Time
	sleeps int
}

func (c *fakeClock) Now() time.Time {

	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {

	c.now = c.now.Add(d)
	c.sleeps++
}

func newSession(term *fakeTerm, files memFiles) (*interp.Session, *fakeClock) {

	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	opts := interp.DefaultOptions()
	opts.Now = clock.Now
	opts.Sleep = clock.Sleep

	return interp.NewSession(term, files, opts), clock
}

func mustParse(t *testing.T, src ...string) *interp.Program {

	t.Helper()

	prog, err := interp.Parse(src)
	if !test.ExpectSuccess(t, err) {
		t.FailNow()
	}

	return prog
}

func runProgram(t *testing.T, term *fakeTerm, src ...string) (*interp.Session, error) {

	t.Helper()

	s, _ := newSession(term, memFiles{})

	return s, s.Run(mustParse(t, src...))
}

func expectError(t *testing.T, err error, kind interp.ErrorKind, line int, msg string) {

	t.Helper()

	var perr *interp.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *interp.Error, got %v", err)
	}

	test.ExpectEquality(t, perr.Kind, kind)
	test.ExpectEquality(t, perr.Line, line)
	test.ExpectEquality(t, perr.Msg, msg)
}

func expectRuntimeError(t *testing.T, err error, line int, msg string) {

	t.Helper()

	expectError(t, err, interp.RuntimeError, line, msg)
}
