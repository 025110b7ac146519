// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// ErrUnknownGranularity is returned by ParseGranularity for names it does not
// recognize.
var ErrUnknownGranularity = errors.New("unknown granularity")

// Granularity selects the tokenizer used to compare whole documents.
type Granularity int

const (
	Words Granularity = iota
	Lines
	Chars
)

// Granularities lists the accepted granularity names in display order.
var Granularities = []string{"words", "lines", "chars"}

// ParseGranularity maps a name from Granularities to its Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "words", "word", "w":
		return Words, nil
	case "lines", "line", "l":
		return Lines, nil
	case "chars", "char", "c":
		return Chars, nil
	}
	return Words, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownGranularity, s, Granularities)
}

func (g Granularity) String() string {
	switch g {
	case Lines:
		return "lines"
	case Chars:
		return "chars"
	default:
		return "words"
	}
}

// MarshalText encodes the granularity by name.
func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Tokenize splits doc with the tokenizer for g.
func (g Granularity) Tokenize(doc string) []string {
	switch g {
	case Lines:
		return TokenizeLines(doc)
	case Chars:
		return TokenizeChars(doc)
	default:
		return TokenizeWords(doc)
	}
}

// Join is the inverse of Tokenize.
func (g Granularity) Join(tokens []string) string {
	if g == Lines {
		return strings.Join(tokens, "\n")
	}
	return strings.Join(tokens, "")
}

// TokenizeLines splits doc on "\n". A document ending in "\n" yields a final
// empty token and the empty document yields a single empty token, exactly as
// strings.Split does.
func TokenizeLines(doc string) []string {
	return strings.Split(doc, "\n")
}

// TokenizeWords splits doc into runs of non-space characters, each carrying
// the whitespace run that follows it. Whitespace before the first word is a
// token of its own. Joining the tokens reproduces doc; the empty document
// yields a single empty token.
func TokenizeWords(doc string) []string {
	if doc == "" {
		return []string{""}
	}

	var tokens []string
	start := 0
	inSpace := false
	sawWord := false
	for i, r := range doc {
		space := unicode.IsSpace(r)
		switch {
		case space:
			inSpace = true
		case inSpace && sawWord:
			// A word begins after trailing whitespace; close the previous token.
			tokens = append(tokens, doc[start:i])
			start = i
			inSpace = false
		case inSpace:
			// Leading whitespace.
			tokens = append(tokens, doc[start:i])
			start = i
			inSpace = false
			sawWord = true
		default:
			sawWord = true
		}
	}
	return append(tokens, doc[start:])
}

// TokenizeChars splits doc into extended grapheme clusters so that combining
// marks and emoji sequences are compared as one unit.
func TokenizeChars(doc string) []string {
	if doc == "" {
		return []string{""}
	}

	tokens := make([]string, 0, utf8.RuneCountInString(doc))
	iter := graphemes.FromString(doc)
	for iter.Next() {
		tokens = append(tokens, iter.Value())
	}
	return tokens
}
