package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ---------------------------------------------------------------------------
// Name list input
// ---------------------------------------------------------------------------

// Name is one entry from the input list, split into its word tokens.
type Name struct {
	Words []string
}

// String returns the space-joined display form of the name.
func (n Name) String() string {
	return strings.Join(n.Words, " ")
}

// parseName turns one input line into a Name. The line is NFC-normalized so
// composed and decomposed input measures identically, trimmed, and split on
// whitespace. Returns false for blank lines.
func parseName(line string) (Name, bool) {
	words := strings.Fields(norm.NFC.String(line))
	if len(words) == 0 {
		return Name{}, false
	}
	return Name{Words: words}, true
}

// readNames reads one name per line, skipping blanks.
func readNames(r io.Reader) ([]Name, error) {
	var names []Name

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if name, ok := parseName(scanner.Text()); ok {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name list: %w", err)
	}
	return names, nil
}

// readNamesFile loads the name list from a file. A missing file or an empty
// list is an error; the run cannot proceed without names.
func readNamesFile(path string) ([]Name, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open name list: %w", err)
	}
	defer f.Close()

	names, err := readNames(f)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no names found in %s", path)
	}
	return names, nil
}
