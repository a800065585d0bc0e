package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

//
// osFiles is the interp.Files provider for LOAD, SAVE and CH.  A name
// given without an extension gets the program suffix
//

type osFiles struct {
	suffix string
}

func newFiles(suffix string) *osFiles {

	return &osFiles{suffix: suffix}
}

func (f *osFiles) path(name string) string {

	if filepath.Ext(name) == "" {
		return name + f.suffix
	}

	return name
}

func (f *osFiles) Exists(name string) bool {

	return fileExists(f.path(name))
}

//
// Line endings are stripped, so a file written on Windows reads the
// same as one written here
//

func (f *osFiles) ReadLines(name string) ([]string, error) {

	var lines []string

	fp, err := os.Open(f.path(name))
	if err != nil {
		return nil, err
	}

	defer fp.Close()

	sc := bufio.NewScanner(fp)

	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (f *osFiles) WriteLines(name string, lines []string) error {

	fp, err := os.Create(f.path(name))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(fp)

	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			fp.Close()
			return err
		}
	}

	if err := w.Flush(); err != nil {
		fp.Close()
		return err
	}

	return fp.Close()
}
