// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm is the line oriented front end shared by the interpreters.
//
// Every instruction set in this module is written one instruction per
// line. The scanner strips ';' comments, splits words, handles
// '.equ NAME VALUE' constants and evaluates '$(expr)' compile-time
// expressions before handing the words of each line to the instruction
// set's own decoder.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Handler decodes the words of a single source line.
type Handler func(lineno int, words []string) error

// Scanner splits program text into words for an instruction decoder.
type Scanner struct {
	Verbose bool              // If set, verbosely logs each line scanned.
	Equate  map[string]string // Map of equates.

	predefine map[string]string
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// Predefine defines an equate that is present before the first line.
func (sc *Scanner) Predefine(equ string, value string) {
	if sc.predefine == nil {
		sc.predefine = map[string]string{equ: value}
	} else {
		sc.predefine[equ] = value
	}
}

// Eval does compile-time $(...) evaluations.
func (sc *Scanner) Eval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range sc.Equate {
		v, nerr := Number(str)
		if nerr != nil {
			// Ignore non-integer equates. They may be registers.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}

	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", "rc="+expr+"\n", pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// parseLine expands a line into words.
func (sc *Scanner) parseLine(line string) (words []string, err error) {
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := sc.Eval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := sc.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		sc.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := sc.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// Scan reads the input, calling handle for every line that has words.
func (sc *Scanner) Scan(input io.Reader, handle Handler) (err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	sc.Equate = maps.Clone(sc.predefine)
	if sc.Equate == nil {
		sc.Equate = map[string]string{}
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if sc.Verbose {
			log.Debugf("%v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = sc.parseLine(line)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}

		err = handle(lineno, words)
		if err != nil {
			return
		}
	}

	err = scanner.Err()

	return
}

// Number parses a signed integer literal. Base prefixes are permitted.
func Number(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// Unsigned parses an unsigned integer literal.
func Unsigned(word string) (value uint64, err error) {
	value, err = strconv.ParseUint(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// Register returns the index of a single letter register name, for a
// register file of count registers named from 'a'.
func Register(word string, count int) (index int, ok bool) {
	if len(word) != 1 || word[0] < 'a' {
		return
	}
	index = int(word[0] - 'a')
	ok = index < count
	return
}

// Arity checks that an opcode word is followed by exactly n operands.
func Arity(words []string, n int) (err error) {
	if len(words) != n+1 {
		err = ErrOperandCount
	}
	return
}
