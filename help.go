package main

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed manual.txt
var manualText string

func executeHelp(args string) {

	if args == "" {
		fmt.Println("BYE or EXIT      : leave the interpreter")
		fmt.Println("CLEAR            : clear the console")
		fmt.Println("DELETE n[-m]     : delete a line or a range of lines")
		fmt.Println("HELP [command]   : this menu")
		fmt.Println("LIST             : show current program")
		fmt.Println("LOAD <file>      : load program into memory")
		fmt.Println("MANUAL           : short PILOT manual")
		fmt.Println("NEW [file]       : erase current program, optionally naming a new file")
		fmt.Println("RESET            : clear current program and variables")
		fmt.Println("RUN              : run current program")
		fmt.Println("SAVE [file]      : save program to disk")
		fmt.Println("STATS            : toggle statistics after RUN")
		fmt.Println("TRACE [EXEC|DUMP]: toggle execution trace or program dump")
		fmt.Println("VARS             : show the variables")
		fmt.Println("n text           : store text as line n")
		return
	}

	cmd, err := lexCommand(args)
	if err != nil || cmd == nil || cmd.token == tokLineNo {
		fmt.Printf("%s : %s\n", EUNKNOWNCOMMAND, args)
		return
	}

	switch cmd.token {
	case tokBye, tokExit:
		fmt.Println("Exit from PILOT, asking first if the program was changed")

	case tokClear:
		fmt.Println("Clear the console")

	case tokDelete:
		fmt.Println("Delete one line, or a range of lines n-m.  The lines" +
			" after the range move up")

	case tokHelp:
		fmt.Println("List the commands, or describe one of them")

	case tokList:
		fmt.Println("List the program as nnn|text, a screenful at a time")

	case tokLoad:
		fmt.Println("Load a program.  Without an extension the name gets " +
			g.config.FileSuffix)

	case tokManual:
		fmt.Println("Print a short manual of the PILOT instructions")

	case tokNew:
		fmt.Println("Erase current program, optionally specifying a" +
			" new filename")

	case tokReset:
		fmt.Println("Erase current program and every variable")

	case tokRun:
		fmt.Println("Execute the current program from its first line")

	case tokSave:
		fmt.Println("Save the current program, optionally specifying a" +
			" new filename")

	case tokStats:
		fmt.Println("Toggle printing execution statistics when user" +
			" program stops")

	case tokTrace:
		fmt.Println("Toggle tracing of each instruction executed (EXEC)," +
			" or a dump of the parsed program before each run (DUMP)")

	case tokVars:
		fmt.Println("Show every variable, numeric ones first")
	}
}

//
// The manual pages like LIST does
//

func executeManual() {

	g.console.ClearScreen()

	pageLines(strings.Split(strings.TrimRight(manualText, "\n"), "\n"))
}
