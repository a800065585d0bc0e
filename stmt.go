package main

import (
	"fmt"

	"github.com/danswartzendruber/avl"
)

//
// A set of wrapper routines to the AVL package.  We do this to
// hide the AVL interface from the shell code.  The tree holds the
// program source, one node per line, keyed by line number
//

func initAvl() {

	g.program = avl.NewAvlTree()
}

func cmpLineNoKey(key any, node any) int {

	return cmpLineNos(key.(int), node.(*stmtNode).lineNo)
}

func cmpLineNoSnode(node1, node2 any) int {

	return cmpLineNos(node1.(*stmtNode).lineNo, node2.(*stmtNode).lineNo)
}

func cmpLineNos(item1, item2 int) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}

func stmtAvlTreeFirstInOrder() *stmtNode {

	p := avl.AvlTreeFirstInOrder(g.program)
	if p != nil {
		return p.(*stmtNode)
	} else {
		return nil
	}
}

func stmtAvlTreeLastInOrder() *stmtNode {

	p := avl.AvlTreeLastInOrder(g.program)
	if p != nil {
		return p.(*stmtNode)
	} else {
		return nil
	}
}

func stmtAvlTreeNextInOrder(stmt *stmtNode) *stmtNode {

	p := avl.AvlTreeNextInOrder(&stmt.avl)
	if p != nil {
		return p.(*stmtNode)
	} else {
		return nil
	}
}

func stmtAvlTreeLookup(lineNo int) *stmtNode {

	p := avl.AvlTreeLookup(g.program, lineNo, cmpLineNoKey)
	if p != nil {
		return p.(*stmtNode)
	} else {
		return nil
	}
}

func stmtAvlTreeInsert(stmt *stmtNode) {

	p := avl.AvlTreeInsert(&g.program, &stmt.avl, stmt, cmpLineNoSnode)
	if p != nil {
		fatalError(fmt.Sprintf("Line %d already in tree???", stmt.lineNo))
	}
}

//
// Number of the last line, 0 for an empty program
//

func lastLineNo() int {

	if stmt := stmtAvlTreeLastInOrder(); stmt != nil {
		return stmt.lineNo
	}

	return 0
}

//
// Store a line.  Numbering past the end pads the program with blank
// lines, so there are never any holes
//

func insertLine(lineNo int, text string) {

	basicAssert(lineNo > 0, "insertLine botch")

	if stmt := stmtAvlTreeLookup(lineNo); stmt != nil {
		stmt.text = text
	} else {
		for n := lastLineNo() + 1; n < lineNo; n++ {
			stmtAvlTreeInsert(&stmtNode{lineNo: n})
		}

		stmtAvlTreeInsert(&stmtNode{lineNo: lineNo, text: text})
	}

	setModified()
}

//
// Remove a range of lines.  The lines after the range move up, so
// the tree is rebuilt from scratch
//

func deleteLines(firstLine, lastLine int) {

	lines := programLines()

	if firstLine < 1 || firstLine > lastLine || lastLine > len(lines) {
		shellError(fmt.Sprintf("%s : %d-%d", EINVALIDRANGE, firstLine, lastLine))
	}

	lines = append(lines[:firstLine-1], lines[lastLine:]...)

	loadLines(lines)

	setModified()
}

//
// Replace the whole program
//

func loadLines(lines []string) {

	initAvl()

	for idx, line := range lines {
		stmtAvlTreeInsert(&stmtNode{lineNo: idx + 1, text: line})
	}
}

func programLines() []string {

	var lines []string

	for stmt := stmtAvlTreeFirstInOrder(); stmt != nil; stmt = stmtAvlTreeNextInOrder(stmt) {
		lines = append(lines, stmt.text)
	}

	return lines
}
