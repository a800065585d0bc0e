package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/garyluck/pilot/interp"
	"github.com/rs/zerolog"
)

//
// Tricky: init is called under the hood by the GO runtime when
// we fire up, so there are no visible calls to it!  Only table
// setup goes here, so the tests can link against this package
//

func init() {

	initMaps()

	initAvl()
}

func main() {

	//
	// We need to close the Liner instances in reverse order, to make
	// sure we end up back in normal (cooked) terminal mode
	//

	defer func() {
		cleanupLiners()
	}()

	initEnv()

	switch len(os.Args) {
	default:
		crash("Usage: pilot [program]")

	case 1:
		// nothing to do

	case 2:
		call(func() { executeLoad(os.Args[1]) })
	}

	printVersionInfo()

	//
	// Run the signal handling code in a goroutine
	//

	go sigHdlr()

	//
	// Loop forever, or until we quit
	//

	for !g.exiting {
		g.running.Store(false)

		call(shell)
	}
}

func initEnv() {

	checkTerminal()

	setupWindow()

	setupLiners()

	loadConfig()

	g.console = newConsole(os.Stdin, os.Stdout)
	g.files = newFiles(g.config.FileSuffix)
	g.session = interp.NewSession(g.console, g.files, g.config.options(traceLogger()))

	g.loginTime = time.Now()
}

//
// Trace output goes to standard error, so it can be redirected away
// from the program's own output
//

func traceLogger() zerolog.Logger {

	if !g.traceExec {
		return zerolog.Nop()
	}

	w := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}

	return zerolog.New(w).Level(zerolog.TraceLevel)
}

func writeGoroutineStacks() {

	name := "goroutines-stacks"
	mode := (os.O_CREATE | os.O_WRONLY)

	dumpFile, err := os.OpenFile(name, mode, 0644)
	if err != nil {
		iErr := err.(*os.PathError)
		fmt.Fprintf(os.Stderr, "Unable to open %s (%s)\n",
			name, iErr.Err.Error())
		return
	}

	_ = pprof.Lookup("goroutine").WriteTo(dumpFile, 2)

	m := fmt.Sprintf("Dumping goroutine stacks to %v and exiting", name)

	crash(m)
}

//
// ^C while a program is printing or computing stops it.  While it
// waits for input, the console sees ^C as the escape key instead
//

func sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGQUIT)
	signal.Notify(ch, syscall.SIGINT)
	signal.Notify(ch, syscall.SIGWINCH)

	for {
		sig := <-ch

		switch sig {

		default:
			crash(fmt.Sprintf("Unexpected signal %d", sig))

		case syscall.SIGWINCH:
			setupWindow()

		case syscall.SIGQUIT:
			writeGoroutineStacks() // does not return

		case syscall.SIGINT:
			interruptRun()
		}
	}
}

//
// Only a running program is stopped.  At the shell prompt ^C is left
// to the liner
//

func interruptRun() {

	if g.running.Load() {
		g.session.Interrupt()
	}
}

//
// This procedure is called by the panic deferred recovery function.
// Three cases here: a shellError, which is just a message for the
// user, a fatalError, which is an internal consistency failure, and
// implicit calls to panic by the Go runtime code.  For the latter
// we scan the call stack, looking for a function named
// 'runtime.gopanic', and pick the next non-runtime frame
//

func decodePanic(e any) {

	var frame runtime.Frame
	var more bool
	var panicSeen bool
	var panicFrame runtime.Frame
	var panicCount int

	switch e := e.(type) {
	default:
		pcs := make([]uintptr, 99)

		_ = pcs[:runtime.Callers(1, pcs)]

		frames := runtime.CallersFrames(pcs)

		for {
			frame, more = frames.Next()
			if !more {
				break
			}

			if frame.Function == "runtime.gopanic" {
				panicSeen = true
				panicCount++
			} else if panicSeen {
				if !strings.HasPrefix(frame.Function, "runtime.") {
					panicFrame = frame
					panicSeen = false
				}
			}
		}

		if panicCount == 0 { // impossible?
			crash("Unable to locate panic caller")
		}

		fmt.Printf("%s at %s line %d\n", e, filepath.Base(panicFrame.File),
			panicFrame.Line)

		debug.PrintStack()

	case *shellErrorInfo:
		fmt.Println(e.msg)

	case *internalErrorInfo:
		fmt.Printf("%q at %s line %d\n", e.msg, filepath.Base(e.file), e.line)

		debug.PrintStack()
	}
}

//
// Wrapper routine for a function.  We need this so that panic calls
// can be caught and decoded before returning to our caller
//

func call(f func()) {

	defer func() {
		err := recover()
		if err != nil {
			decodePanic(err)
		}
	}()

	f()
}

//
// A couple of handy 'assert' functions
//

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalError(msg)
	}
}

func shellCheck(chk bool, msg string) {

	if !chk {
		shellError(msg)
	}
}

//
// Abandon the current command with a message for the user
//

func shellError(msg string) {

	panic(&shellErrorInfo{msg: strings.TrimSuffix(msg, "\n")})
}

//
// Internal errors.  We find filename and line number of our caller,
// and stuff those into the internalErrorInfo structure before calling
// panic
//

func fatalError(msg string) {

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		crash("Unable to find caller frame!\n")
	}

	msg = strings.TrimRight(msg, "\n")

	panic(&internalErrorInfo{msg, file, line})
}

//
// Read and run one shell command
//

func shell() {

	line, eof := readLine(g.parserLiner, g.config.Prompt, true)
	if eof {
		executeExit("")
		return
	}

	cmd, err := lexCommand(strings.TrimSpace(line))
	if err != nil {
		shellError(err.Error())
	}

	if cmd == nil {
		return
	}

	if cmd.token == tokLineNo {
		insertLine(cmd.lineNo, cmd.args)
		return
	}

	executeCommand(cmd)
}

func printStatistics() {

	var mem runtime.MemStats

	if g.printStats {
		fmt.Println()
		printCpuUsage()
		runtime.GC()
		runtime.ReadMemStats(&mem)
		fmt.Printf("%dMB memory used\n", convertToMB(mem.HeapAlloc))
		fmt.Printf("%d %s executed\n", s.numSteps,
			pluralize("instruction", s.numSteps))
	}
}

func resetStatistics() {
	s.utime = 0
	s.stime = 0
	s.numSteps = 0
}

func printVersionInfo() {

	fmt.Printf("PILOT interpreter version %s - built %s\n",
		VERSION, buildTimestampStr)
	fmt.Println("Type HELP for commands list")
}
