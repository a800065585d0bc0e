package main

import (
	"sync/atomic"
	"time"

	"github.com/danswartzendruber/avl"
	"github.com/danswartzendruber/liner"
	"github.com/garyluck/pilot/interp"
)

//
// Constants
//

const VERSION = "1.0.0"

const pilotFileSuffix = ".pil"

const myPrompt = ":>"

const maxLineNo = 999

const minWindowCols = 80
const minWindowRows = 25

const clearScreenSeq = "\033[2J"
const cursorHomeSeq = "\033[H"
const cursorMoveFmt = "\033[%d;%dH"
const bellSeq = "\a"

const ctrlC = 3

const configEnvVar = "PILOT_CONFIG"
const configDirName = "pilot"
const configFileName = "pilot.yaml"

//
// Type definitions
//

//
// One line of program source.  Lines are numbered from 1 with no
// gaps, and the AVL tree is keyed by line number
//

type stmtNode struct {
	avl    avl.AvlNode
	lineNo int
	text   string
}

//
// A lexed shell command.  For a numbered line, args is the source
// text with its leading blanks removed
//

type command struct {
	token  int
	name   string
	lineNo int
	args   string
}

//
// Panic payloads decoded by call()
//

type shellErrorInfo struct {
	msg string
}

type internalErrorInfo struct {
	msg  string
	file string
	line int
}

type window struct {
	rows int
	cols int
}

//
// Set by the linker, e.g. -ldflags "-X main.buildTimestampStr=..."
//

var buildTimestampStr string

//
// Global state
//

var g struct {
	program         *avl.AvlNode
	session         *interp.Session
	console         *console
	files           *osFiles
	config          config
	parserLiner     *liner.State
	inputLiner      *liner.State
	programFilename string
	window          window
	loginTime       time.Time
	exiting         bool
	modified        bool
	running         atomic.Bool
	printStats      bool
	traceExec       bool
	traceDump       bool
}

//
// Runtime statistics for the last run
//

var s struct {
	elapsed  time.Time
	utime    int64
	stime    int64
	numSteps int64
}
