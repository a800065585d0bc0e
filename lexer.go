package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

//
// Shell command tokens
//

const (
	tokNone = iota
	tokBye
	tokClear
	tokDelete
	tokExit
	tokHelp
	tokList
	tokLoad
	tokManual
	tokNew
	tokReset
	tokRun
	tokSave
	tokStats
	tokTrace
	tokVars
	tokLineNo
	tokLast
)

var tokenNames = [...]string{
	tokBye:     "BYE",
	tokClear:   "CLEAR",
	tokDelete:  "DELETE",
	tokExit:    "EXIT",
	tokHelp:    "HELP",
	tokList:    "LIST",
	tokLoad:    "LOAD",
	tokManual:  "MANUAL",
	tokNew:     "NEW",
	tokReset:   "RESET",
	tokRun:     "RUN",
	tokSave:    "SAVE",
	tokStats:   "STATS",
	tokTrace:   "TRACE",
	tokVars:    "VARS",
	tokLineNo:  "",
	tokLast:    "",
	tokNone:    "",
}

//
// TRACE options
//

const (
	traceExec = "EXEC"
	traceDump = "DUMP"
)

var keywordMap map[string]int

//
// Keywords are matched without regard to case, so the map is keyed
// on the lower case name
//

func initMaps() {

	keywordMap = make(map[string]int)

	for tok := tokBye; tok < tokLineNo; tok++ {
		keywordMap[strings.ToLower(tokenNames[tok])] = tok
	}
}

func getTokenName(tok int) string {

	if tok <= tokNone || tok >= tokLast {
		return "?"
	}

	return tokenNames[tok]
}

func dummyScannerError(s *scanner.Scanner, msg string) {
}

func newScanner(src string) *scanner.Scanner {

	var s scanner.Scanner

	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	s.Error = dummyScannerError

	return &s
}

//
// Lex a command line.  Only the first lexeme is scanned, since it
// decides how the rest of the line is read: a keyword takes the rest
// as its (trimmed) arguments, a line number takes it as program text.
// An empty line gives a nil command
//

func lexCommand(line string) (*command, error) {

	s := newScanner(line)

	tok := s.Scan()
	text := s.TokenText()
	rest := line[s.Position.Offset+len(text):]

	switch tok {
	case scanner.EOF:
		return nil, nil

	case scanner.Int:
		lineNo, err := strconv.Atoi(text)
		if err != nil || lineNo < 1 || lineNo > maxLineNo {
			return nil, fmt.Errorf("%s : %s", EINVALIDLINENO, text)
		}

		return &command{
			token:  tokLineNo,
			name:   text,
			lineNo: lineNo,
			args:   strings.TrimLeft(rest, " \t"),
		}, nil

	case scanner.Ident:
		if t, ok := keywordMap[strings.ToLower(text)]; ok {
			return &command{
				token: t,
				name:  tokenNames[t],
				args:  strings.TrimSpace(rest),
			}, nil
		}
	}

	return nil, fmt.Errorf("%s : %s", EUNKNOWNCOMMAND, strings.Fields(line)[0])
}

//
// Parse 'n' or 'n-m'
//

func lexLineRange(args string) (int, int, error) {

	var first, last int
	var err error

	s := newScanner(args)

	if s.Scan() != scanner.Int {
		return 0, 0, fmt.Errorf("%s : %s", EINVALIDRANGE, args)
	}

	if first, err = strconv.Atoi(s.TokenText()); err != nil {
		return 0, 0, fmt.Errorf("%s : %s", EINVALIDRANGE, args)
	}

	switch s.Scan() {
	case scanner.EOF:
		return first, first, nil

	case '-':
		if s.Scan() != scanner.Int {
			return 0, 0, fmt.Errorf("%s : %s", EINVALIDRANGE, args)
		}

		if last, err = strconv.Atoi(s.TokenText()); err != nil {
			return 0, 0, fmt.Errorf("%s : %s", EINVALIDRANGE, args)
		}

		if s.Scan() == scanner.EOF {
			return first, last, nil
		}
	}

	return 0, 0, fmt.Errorf("%s : %s", EINVALIDRANGE, args)
}

//
// TRACE takes any number of EXEC and DUMP options.  None means EXEC
//

func lexTraceOptions(args string) ([]string, error) {

	var opts []string

	s := newScanner(args)

	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		opt := strings.ToUpper(s.TokenText())

		if tok != scanner.Ident || (opt != traceExec && opt != traceDump) {
			return nil, fmt.Errorf("%s : %s", EINVALIDTRACE, s.TokenText())
		}

		opts = append(opts, opt)
	}

	if len(opts) == 0 {
		opts = append(opts, traceExec)
	}

	return opts, nil
}
