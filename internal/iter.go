// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package internal

import (
	"bufio"
	"io"
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IterLines yields each line of the input with its 1-based line number.
// Iteration stops at the first read error, which is stored in *err.
func IterLines(input io.Reader, err *error) iter.Seq2[int, string] {
	return func(yield func(lineno int, line string) bool) {
		scanner := bufio.NewScanner(input)
		var lineno int
		for scanner.Scan() {
			lineno++
			if !yield(lineno, scanner.Text()) {
				return
			}
		}
		if err != nil {
			*err = scanner.Err()
		}
	}
}
