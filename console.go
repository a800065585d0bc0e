package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danswartzendruber/liner"
	"github.com/garyluck/pilot/interp"
	"github.com/pkg/term/termios"
	"golang.org/x/term"
)

//
// The console is the interp.Terminal the shell hands to a session.
// Line input goes through the input liner.  Single key reads and the
// key-available check need the terminal in raw mode, which is entered
// for the one read or check and dropped again straight after, so ^C
// still raises SIGINT while a program computes
//

type console struct {
	in       *os.File
	out      *os.File
	rawState *term.State
}

func newConsole(in, out *os.File) *console {

	return &console{in: in, out: out}
}

func (c *console) rawMode() error {

	if c.rawState != nil {
		return nil
	}

	st, err := term.MakeRaw(int(c.in.Fd()))
	if err != nil {
		return err
	}

	c.rawState = st

	return nil
}

func (c *console) cookedMode() {

	if c.rawState != nil {
		_ = term.Restore(int(c.in.Fd()), c.rawState)
		c.rawState = nil
	}
}

func (c *console) Write(str string) error {

	c.cookedMode()

	_, err := io.WriteString(c.out, str)

	return err
}

//
// ReadLine uses the input liner, which has no history.  ^C aborts the
// prompt and is reported as the escape key.  ^D on an empty line, or
// the end of input, is io.EOF.  maxLen is applied by the engine after
// trimming
//

func (c *console) ReadLine(maxLen int) (string, error) {

	c.cookedMode()

	line, err := g.inputLiner.Prompt("")
	if err != nil {
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", interp.ErrEscape

		default:
			return "", err
		}
	}

	return line, nil
}

func (c *console) KeyAvailable() bool {

	if err := c.rawMode(); err != nil {
		return false
	}

	defer c.cookedMode()

	n, err := termios.Tiocinq(c.in.Fd())

	return err == nil && n > 0
}

//
// ReadKey drops any type-ahead and waits for one key.  Cursor and
// function keys arrive as escape sequences, which are swallowed and
// reported as key 0, so only a lone ESC counts as the escape key
//

func (c *console) ReadKey() (rune, error) {

	if err := c.rawMode(); err != nil {
		return 0, err
	}

	defer c.cookedMode()

	_ = termios.Tcflush(c.in.Fd(), termios.TCIFLUSH)

	var buf [1]byte

	if _, err := c.in.Read(buf[:]); err != nil {
		return 0, err
	}

	switch buf[0] {
	case ctrlC:
		return 0, interp.ErrEscape

	case byte(interp.KeyEscape):
		if n, err := termios.Tiocinq(c.in.Fd()); err == nil && n > 0 {
			_ = termios.Tcflush(c.in.Fd(), termios.TCIFLUSH)
			return 0, nil
		}
	}

	return rune(buf[0]), nil
}

func (c *console) ClearScreen() error {

	return c.Write(clearScreenSeq + cursorHomeSeq)
}

//
// Cursor addressing needs a real terminal at least as big as the
// screen a program may address
//

func (c *console) SetCursor(col, row int) error {

	if !term.IsTerminal(int(c.out.Fd())) || os.Getenv("TERM") == "dumb" {
		return interp.ErrUnsupported
	}

	cols, rows, err := term.GetSize(int(c.out.Fd()))
	if err != nil || cols < minWindowCols || rows < minWindowRows {
		return interp.ErrUnsupported
	}

	return c.Write(fmt.Sprintf(cursorMoveFmt, row+1, col+1))
}

func (c *console) Bell() error {

	return c.Write(bellSeq)
}
