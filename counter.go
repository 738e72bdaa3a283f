package main

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// resolveModes turns the requested metric flags into the active set. With
// no flags at all the active set is the classic default: lines, words and
// byte counts. -c and -m share the chars column; -m switches its unit to
// runes and wins when both are given.
func resolveModes(lineMode, wordMode, byteMode, charMode, tokenMode bool) Modes {
	if !lineMode && !wordMode && !byteMode && !charMode && !tokenMode {
		return Modes{Lines: true, Words: true, Chars: true, CharUnit: UnitBytes}
	}

	m := Modes{
		Lines:    lineMode,
		Words:    wordMode,
		Chars:    byteMode || charMode,
		Tokens:   tokenMode,
		CharUnit: UnitBytes,
	}
	if charMode {
		m.CharUnit = UnitRunes
	}
	return m
}

// newCount returns the fold identity for the given modes: every active
// metric present at zero, every inactive metric absent.
func newCount(modes Modes) Count {
	return Count{
		Lines:  Metric{Active: modes.Lines},
		Words:  Metric{Active: modes.Words},
		Chars:  Metric{Active: modes.Chars},
		Tokens: Metric{Active: modes.Tokens},
	}
}

// countReader folds a stream into a Count one line at a time, never
// holding more than a single line in memory. A line is a maximal run of
// bytes up to a newline or end of stream. The newline is not part of the
// line content but still contributes one unit to the char/byte column, so
// every consumed line adds len(line)+1 there; an unterminated final line
// counts as a line and gets the +1 as well.
//
// On a read error the Count accumulated from the lines consumed so far is
// returned alongside the error. Whatever bytes arrived with the failing
// read are discarded rather than half-counted; the caller decides whether
// the partial result is usable.
func countReader(r io.Reader, modes Modes, tk Tokenizer) (Count, error) {
	cnt := newCount(modes)
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return cnt, err
		}
		if len(line) > 0 {
			content := strings.TrimSuffix(line, "\n")
			if modes.Lines {
				cnt.Lines.Value++
			}
			if modes.Words {
				cnt.Words.Value += int64(countWords(content))
			}
			if modes.Chars {
				if modes.CharUnit == UnitRunes {
					cnt.Chars.Value += int64(utf8.RuneCountInString(content)) + 1
				} else {
					cnt.Chars.Value += int64(len(content)) + 1
				}
			}
			if modes.Tokens && tk != nil {
				cnt.Tokens.Value += int64(tk.CountTokens(content))
			}
		}
		if err == io.EOF {
			return cnt, nil
		}
	}
}

// countWords counts the maximal runs of non-whitespace in a line. Any
// Unicode whitespace separates words; consecutive separators collapse and
// leading or trailing whitespace adds nothing. Locale-specific word
// boundaries are deliberately out of scope.
func countWords(line string) int {
	return len(strings.Fields(line))
}
