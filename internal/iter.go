package internal

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Lines yields each line of the text with its 1-based line number.
// Trailing carriage returns and surrounding whitespace are trimmed.
func Lines(text string) iter.Seq2[int, string] {
	return ReaderLines(strings.NewReader(text))
}

// ReaderLines yields each line of the input with its 1-based line number.
// Reading stops silently at the first read error; callers that care use
// a bufio.Scanner directly.
func ReaderLines(input io.Reader) iter.Seq2[int, string] {
	return func(yield func(lineno int, line string) bool) {
		scanner := bufio.NewScanner(input)
		var lineno int
		for scanner.Scan() {
			lineno++
			if !yield(lineno, strings.TrimSpace(scanner.Text())) {
				return // Stop if the consumer stops
			}
		}
	}
}

// Words splits a line on whitespace, dropping empty words.
func Words(line string) []string {
	return strings.Fields(line)
}
