package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Ensure we are connected to a tty!
//

func checkTerminal() {

	if !term.IsTerminal(2) {
		crash("")
	}

	if !term.IsTerminal(0) {
		crash("Standard input must be a terminal")
	}

	if !term.IsTerminal(1) {
		crash("Standard output must be a terminal")
	}
}

//
// Read terminal geometry.  LIST pages on the row count
//

func setupWindow() {

	cols, rows, err := term.GetSize(1)
	if err != nil {
		cols, rows = minWindowCols, minWindowRows
	}

	g.window.cols = cols
	g.window.rows = rows
}

//
// We create two Liner instances.  One for the shell prompt, and one
// for A and WAIT input in a running program.  The shell gets a history,
// program input does not, and only program input is aborted by ^C,
// which the console reports as the escape key.  They must be closed in
// the reverse order, so the terminal ends up back in cooked mode
//

func setupLiners() {
	g.parserLiner = setupLiner(false)
	g.inputLiner = setupLiner(true)
}

func setupLiner(ctrlCAborts bool) *liner.State {

	l := liner.NewLiner()

	l.SetCtrlCAborts(ctrlCAborts)

	return l
}

//
// NB: we cannot call (or cause to be called) crash(), as that would
// recurse
//

func cleanupLiners() {
	cleanupLiner(&g.inputLiner)
	cleanupLiner(&g.parserLiner)
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

//
// Read a shell line.  ^D at the start of a line gives eof
//

func readLine(l *liner.State, prompt string, history bool) (string, bool) {

	s, err := l.Prompt(prompt)

	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}

		crash(fmt.Sprintf("readLine error: %q\n", err))
	}

	if history && strings.TrimSpace(s) != "" {
		l.AppendHistory(s)
	}

	return s, false
}

//
// Prompt user for an action requiring a yes/no
//

func promptYesNo(msg string) bool {

	for {
		prompt := fmt.Sprintf("%s (yes/no)? ", msg)
		line, eof := readLine(g.parserLiner, prompt, false)

		if eof {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		default:
			fmt.Println("Answer yes or no!")
			continue

		case "yes", "y":
			return true

		case "no", "n":
			return false
		}
	}
}

//
// If the file already exists, prompt for confirmation
//

func checkOverwrite(filename string) {

	if !promptYesNo(fmt.Sprintf("Overwrite %s", filename)) {
		shellError(ENOTOVERWRITTEN)
	}
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

func convertToMB(num uint64) uint64 {

	const MB = 1024 * 1024

	return (num + MB - 1) / MB
}

//
// Initialize the clock
//

func initClock() {

	s.elapsed = time.Now()
	s.utime, s.stime = getCPUInfo(1)
}

func printCpuUsage() {

	elapsed := time.Since(s.elapsed)
	utime, stime := getCPUInfo(1)

	fmt.Printf("CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-s.utime), formatCPUTime(stime-s.stime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// User and system CPU seconds used so far, from /proc.  Where that is
// not available the statistics just read zero
//

func getCPUInfo(divisor int64) (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck/divisor == 0 {
		return 0, 0
	}

	clktck /= divisor

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output, and we
// would not see it then.  Also, dup os.Stdout, then close os.Stdout
// and os.Stderr in case another goroutine is writing to the terminal.
// Make sure to call cleanupLiners, so the terminal state is sane
//

func crash(msg string) {

	var w *os.File

	if g.console != nil {
		g.console.cookedMode()
	}

	cleanupLiners()

	if msg != "" {
		fd, err := syscall.Dup(int(os.Stderr.Fd()))
		if err == nil {
			os.Stdout.Close()
			os.Stderr.Close()
			w = os.NewFile(uintptr(fd), "stdout on new fd")
		} else {
			w = os.Stderr
		}

		fmt.Fprintln(w, msg)
	}

	os.Exit(1)
}

//
// Take a filename for a source program and sanity check any
// possible suffix.  If no suffix, append the program suffix and
// return the new filename
//

func validateProgramFilename(filename, suffix string) (string, bool) {

	if filename == "" || strings.ContainsAny(filename, " \t") {
		return "", false
	}

	ext := filepath.Ext(filename)

	switch {
	case ext == "":
		return filename + suffix, true

	case strings.EqualFold(ext, suffix):
		return filename, true

	default:
		return "", false
	}
}

func fileExists(filename string) bool {

	//
	// Return true if the file exists and can be seen.
	// We don't care if it can't be opened by the caller,
	// as they will handle any permissions issues
	//

	if _, err := os.Stat(filename); err == nil {
		return true
	} else {
		return false
	}
}

func setProgramFilename(name string) {

	g.programFilename = name
}

func setModified() {

	g.modified = true
}

func clearModified() {

	g.modified = false
}

//
// Unsaved edits need confirmation before they are thrown away
//

func checkModified() {

	if g.modified {
		if !promptYesNo("Discard modified program") {
			shellError(ENOTSAVED)
		}
	}
}
