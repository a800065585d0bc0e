package main

import (
	"testing"

	"github.com/garyluck/pilot/test"
)

//
// Run f, which must abandon the command with msg
//

func expectShellError(t *testing.T, msg string, f func()) {

	t.Helper()

	defer func() {
		t.Helper()

		e, ok := recover().(*shellErrorInfo)
		if !ok {
			t.Errorf("expected a shell error (%s)", msg)
			return
		}

		test.ExpectEquality(t, e.msg, msg)
	}()

	f()
}

func TestInsertLine(t *testing.T) {

	initAvl()
	clearModified()

	insertLine(3, "T:THREE")

	test.ExpectEquality(t, g.modified, true)
	test.ExpectEquality(t, lastLineNo(), 3)
	test.ExpectEquality(t, len(programLines()), 3)
	test.ExpectEquality(t, programLines()[0], "")
	test.ExpectEquality(t, programLines()[2], "T:THREE")

	insertLine(1, "*START")
	insertLine(3, "T:3")

	lines := programLines()
	test.ExpectEquality(t, len(lines), 3)
	test.ExpectEquality(t, lines[0], "*START")
	test.ExpectEquality(t, lines[1], "")
	test.ExpectEquality(t, lines[2], "T:3")
}

func TestDeleteLines(t *testing.T) {

	loadLines([]string{"A:", "B:", "C:", "D:", "E:"})

	deleteLines(2, 3)

	lines := programLines()
	test.ExpectEquality(t, len(lines), 3)
	test.ExpectEquality(t, lines[0], "A:")
	test.ExpectEquality(t, lines[1], "D:")
	test.ExpectEquality(t, lines[2], "E:")
	test.ExpectEquality(t, stmtAvlTreeLookup(3).text, "E:")

	deleteLines(3, 3)
	test.ExpectEquality(t, lastLineNo(), 2)

	expectShellError(t, EINVALIDRANGE+" : 2-5", func() { deleteLines(2, 5) })
	expectShellError(t, EINVALIDRANGE+" : 2-1", func() { deleteLines(2, 1) })
	expectShellError(t, EINVALIDRANGE+" : 0-1", func() { deleteLines(0, 1) })

	test.ExpectEquality(t, len(programLines()), 2)
}

func TestEmptyProgram(t *testing.T) {

	initAvl()

	test.ExpectEquality(t, lastLineNo(), 0)
	test.ExpectEquality(t, len(programLines()), 0)
	test.ExpectEquality(t, stmtAvlTreeFirstInOrder() == nil, true)
}
