package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/garyluck/pilot/interp"
	"github.com/goforj/godump"
)

//
// Dispatch a shell command.  Commands that take no parameters refuse
// any, as a typo there is more likely than a deliberate argument
//

func executeCommand(cmd *command) {

	switch cmd.token {
	case tokBye, tokClear, tokExit, tokList, tokManual, tokReset,
		tokRun, tokStats, tokVars:
		shellCheck(cmd.args == "", fmt.Sprintf("%s %s", cmd.name, ENOPARAMETERS))
	}

	switch cmd.token {
	default:
		fatalError(fmt.Sprintf("unexpected command %s", getTokenName(cmd.token)))

	case tokBye, tokExit:
		executeExit(cmd.args)

	case tokClear:
		executeClear()

	case tokDelete:
		executeDelete(cmd.args)

	case tokHelp:
		executeHelp(cmd.args)

	case tokList:
		executeList()

	case tokLoad:
		executeLoad(cmd.args)

	case tokManual:
		executeManual()

	case tokNew:
		executeNew(cmd.args)

	case tokReset:
		executeReset()

	case tokRun:
		executeRun()

	case tokSave:
		executeSave(cmd.args)

	case tokStats:
		executeStats()

	case tokTrace:
		executeTrace(cmd.args)

	case tokVars:
		executeVars()
	}
}

func executeExit(args string) {

	checkModified()

	g.exiting = true
}

func executeClear() {

	g.console.ClearScreen()
}

func executeDelete(args string) {

	first, last, err := lexLineRange(args)
	if err != nil {
		shellError(err.Error())
	}

	deleteLines(first, last)
}

//
// Print lines a screenful at a time, waiting for a key in between
//

func pageLines(lines []string) {

	pageSize := max(g.window.rows-1, 1)

	for idx, line := range lines {
		if idx > 0 && idx%pageSize == 0 {
			if _, err := g.console.ReadKey(); errors.Is(err, interp.ErrEscape) {
				return
			}
		}

		fmt.Println(line)
	}
}

func executeList() {

	lines := programLines()
	if len(lines) == 0 {
		return
	}

	g.console.ClearScreen()

	pageLines(interp.List(lines))
}

//
// LOAD replaces the program and every variable
//

func executeLoad(args string) {

	name, ok := validateProgramFilename(args, g.config.FileSuffix)
	shellCheck(ok, EMISSINGFILENAME)

	shellCheck(g.files.Exists(name), fmt.Sprintf("%s : %s", EFILENOTFOUND, name))

	checkModified()

	lines, err := g.files.ReadLines(name)
	if err != nil {
		shellError(fmt.Sprintf("%s %s : %v", ELOADFAILED, name, err))
	}

	g.session.Reset()

	loadLines(lines)

	setProgramFilename(name)

	clearModified()
}

//
// 4 cases:
//
// No filename given, and a current filename is defined - use that name
// No filename given, and no current filename - error
// A Filename was given - confirm if it would overwrite some other file,
//   and it becomes the current filename
//

func executeSave(args string) {

	name := g.programFilename

	if args != "" {
		var ok bool

		name, ok = validateProgramFilename(args, g.config.FileSuffix)
		shellCheck(ok, EMISSINGFILENAME)

		if name != g.programFilename && g.files.Exists(name) {
			checkOverwrite(name)
		}
	}

	shellCheck(name != "", EMISSINGFILENAME)

	if err := g.files.WriteLines(name, programLines()); err != nil {
		shellError(fmt.Sprintf("%s %s : %v", ESAVEFAILED, name, err))
	}

	setProgramFilename(name)

	clearModified()
}

//
// NEW forgets the program and its filename.  Naming a file makes it
// the target of the next SAVE
//

func executeNew(args string) {

	var name string

	if args != "" {
		var ok bool

		name, ok = validateProgramFilename(args, g.config.FileSuffix)
		shellCheck(ok, EMISSINGFILENAME)
	}

	checkModified()

	if name != "" && g.files.Exists(name) {
		checkOverwrite(name)
	}

	initAvl()

	g.session.Reset()

	setProgramFilename(name)

	clearModified()
}

func executeReset() {

	checkModified()

	initAvl()

	g.session.Reset()

	clearModified()
}

//
// RUN starts from a clean slate: variables are dropped and the whole
// program is parsed again
//

func executeRun() {

	lines := programLines()
	shellCheck(len(lines) > 0, ENOPROGRAM)

	g.console.ClearScreen()

	prog, err := interp.Parse(lines)
	if err != nil {
		shellError(err.Error())
	}

	if g.traceDump {
		godump.Dump(prog)
	}

	g.session.Reset()

	resetStatistics()

	initClock()

	g.running.Store(true)

	err = g.session.Run(prog)

	g.running.Store(false)

	g.console.cookedMode()

	s.numSteps = g.session.Steps()

	switch {
	case errors.Is(err, interp.ErrInterrupted):
		fmt.Printf("\n%s at line %03d\n", EINTERRUPTED, g.session.Line())

	case err != nil:
		fmt.Println(err)
	}

	printStatistics()
}

func executeStats() {

	g.printStats = !g.printStats

	fmt.Printf("toggling stats %s\n", switchSetting(g.printStats))

	fmt.Printf("Session time %s\n", formatCPUTime(int64(time.Since(g.loginTime).Seconds())))
}

//
// Toggle trace flags
//

func executeTrace(args string) {

	opts, err := lexTraceOptions(args)
	if err != nil {
		shellError(err.Error())
	}

	for _, opt := range opts {
		switch opt {
		case traceExec:
			g.traceExec = !g.traceExec
			g.session.SetLogger(traceLogger())
			fmt.Printf("toggling traceExec %s\n", switchSetting(g.traceExec))

		case traceDump:
			g.traceDump = !g.traceDump
			fmt.Printf("toggling traceDump %s\n", switchSetting(g.traceDump))
		}
	}
}

func executeVars() {

	for _, line := range g.session.Vars().Dump() {
		fmt.Println(line)
	}
}
