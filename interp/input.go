package interp

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

//
// The escape key is handled the same way by every blocking read.
// While escape is disabled the key is swallowed and the read goes on.
// Otherwise a registered handler is called like U, and with no
// handler the program stops
//

func (s *Session) escape() (int, error) {

	s.log.Debug().Int("pc", s.pc).Str("handler", s.escapeLabel).Msg("escape")

	if s.escapeLabel == "" {
		return s.pc, errHalt
	}

	return s.call(s.escapeLabel)
}

//
// Read one line of input, trimmed and cut to INMAX characters.  Only
// an enabled escape key gets through as ErrEscape.  An interrupt is
// seen before every read, so a program asking again and again for a
// number can still be stopped
//

func (s *Session) readLine() (string, error) {

	for {
		if s.interrupted.Load() {
			return "", ErrInterrupted
		}

		line, err := s.term.ReadLine(s.acceptMaxLen)

		if errors.Is(err, ErrEscape) {
			if !s.escapeEnabled {
				continue
			}

			return "", ErrEscape
		}

		if err != nil {
			return "", itemError(EINPUT, err.Error())
		}

		return truncate(strings.TrimSpace(line), s.acceptMaxLen), nil
	}
}

//
// Cut str to at most n runes
//

func truncate(str string, n int) string {

	if utf8.RuneCountInString(str) <= n {
		return str
	}

	for idx := range str {
		if n == 0 {
			return str[:idx]
		}
		n--
	}

	return str
}

//
// The optional body of A and WAIT names the variable receiving input
//

func inputTarget(ins *Instruction) (string, error) {

	param := strings.TrimSpace(ins.Body)

	if param != "" && !validVar(param) {
		return "", itemError(EINVALIDPARAM, param)
	}

	return param, nil
}

//
// Store a line of input.  false means a numeric variable was given
// something that is not a number, and the caller should prompt again
//

func (s *Session) storeInput(param string, line string) (bool, error) {

	s.accept = line

	switch {
	case param == "":
		return true, nil

	case param[0] == numericSigil:
		f, err := strconv.ParseFloat(line, 32)
		if err != nil {
			if err := s.write(invalidInputMsg + "\n"); err != nil {
				return false, err
			}

			return false, nil
		}

		return true, s.vars.SetNumeric(param, float32(f))
	}

	return true, s.vars.SetString(param, line)
}

//
// A:[#VAR|$VAR]
//

func (s *Session) executeAccept(ins *Instruction) (int, error) {

	param, err := inputTarget(ins)
	if err != nil {
		return s.pc, err
	}

	for {
		line, err := s.readLine()
		if errors.Is(err, ErrEscape) {
			return s.escape()
		} else if err != nil {
			return s.pc, err
		}

		done, err := s.storeInput(param, line)
		if err != nil {
			return s.pc, err
		}

		if done {
			return s.pc + 1, nil
		}
	}
}

//
// Poll for a key until the WAIT window closes.  The clock is only
// looked at between polls, so the window is as precise as the poll
// interval
//

func (s *Session) waitKey() bool {

	deadline := s.opts.Now().Add(s.opts.WaitTimeout)

	for {
		if s.term.KeyAvailable() {
			return true
		}

		if s.interrupted.Load() {
			return false
		}

		if !s.opts.Now().Before(deadline) {
			return false
		}

		s.opts.Sleep(s.opts.PollInterval)
	}
}

//
// WAIT:[#VAR|$VAR] is A with a time limit.  On timeout the accept
// buffer holds TIMEOUT, a numeric variable is set to 0 and a string
// variable to TIMEOUT
//

func (s *Session) executeWait(ins *Instruction) (int, error) {

	param, err := inputTarget(ins)
	if err != nil {
		return s.pc, err
	}

	for {
		if !s.waitKey() {
			if s.interrupted.Load() {
				return s.pc, ErrInterrupted
			}

			s.log.Debug().Int("pc", s.pc).Msg("wait timeout")

			s.accept = timeoutMarker

			switch {
			case param == "":

			case param[0] == numericSigil:
				err = s.vars.SetNumeric(param, 0)

			default:
				err = s.vars.SetString(param, timeoutMarker)
			}

			if err != nil {
				return s.pc, err
			}

			return s.pc + 1, nil
		}

		line, err := s.readLine()
		if errors.Is(err, ErrEscape) {
			return s.escape()
		} else if err != nil {
			return s.pc, err
		}

		done, err := s.storeInput(param, line)
		if err != nil {
			return s.pc, err
		}

		if done {
			return s.pc + 1, nil
		}
	}
}

//
// HOLD:[label] waits for a single key.  Enter goes on to the next
// line, R calls the label if there is one.  Other keys are ignored
//

func (s *Session) executeHold(ins *Instruction) (int, error) {

	label := strings.TrimSpace(ins.Body)

	if label != "" && !ValidLabel(label) {
		return s.pc, itemError(EINVALIDLABEL, label)
	}

	for {
		key, err := s.term.ReadKey()

		if errors.Is(err, ErrEscape) || (err == nil && key == KeyEscape) {
			if !s.escapeEnabled {
				continue
			}

			return s.escape()
		}

		if err != nil {
			return s.pc, itemError(EINPUT, err.Error())
		}

		switch key {
		case KeyEnter, KeyNL:
			return s.pc + 1, nil

		case 'R', 'r':
			if label != "" {
				return s.call(label)
			}
		}
	}
}
