package corpus

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Level selects the tokenization granularity for a corpus.
type Level string

// Supported granularities.
const (
	// LevelWord splits on whitespace. Pre-segmented subword text (e.g.
	// BPE output with "@@" continuation markers) uses this level too.
	LevelWord Level = "word"
	// LevelChar splits into individual runes.
	LevelChar Level = "char"
	// LevelBPE segments with a byte-pair encoding via tiktoken.
	LevelBPE Level = "bpe"
)

// defaultBPEEncoding is the tiktoken encoding used for LevelBPE.
const defaultBPEEncoding = "cl100k_base"

// Tokenizer converts a raw corpus line into tokens.
//
// The same tokenizer must be used for length filtering and for building
// Examples, so counted lengths and stored tokens always agree.
type Tokenizer struct {
	level     Level
	lowercase bool
	encoding  *tiktoken.Tiktoken
}

// NewTokenizer creates a tokenizer for the given granularity level.
func NewTokenizer(level Level, lowercase bool) (*Tokenizer, error) {
	t := &Tokenizer{level: level, lowercase: lowercase}
	switch level {
	case LevelWord, LevelChar:
	case LevelBPE:
		encoding, err := tiktoken.GetEncoding(defaultBPEEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", defaultBPEEncoding, err)
		}
		t.encoding = encoding
	default:
		return nil, fmt.Errorf("unknown tokenization level %q (want word, char or bpe)", level)
	}
	return t, nil
}

// Level returns the tokenizer's granularity.
func (t *Tokenizer) Level() Level {
	return t.level
}

// Tokenize splits a line into tokens according to the configured level.
func (t *Tokenizer) Tokenize(line string) []string {
	if t.lowercase {
		line = strings.ToLower(line)
	}
	switch t.level {
	case LevelChar:
		runes := []rune(line)
		tokens := make([]string, len(runes))
		for i, r := range runes {
			tokens[i] = string(r)
		}
		return tokens
	case LevelBPE:
		ids := t.encoding.Encode(line, nil, nil)
		tokens := make([]string, len(ids))
		for i, id := range ids {
			tokens[i] = t.encoding.Decode([]int{id})
		}
		return tokens
	default:
		return strings.Fields(line)
	}
}

// Detokenize joins tokens back into a surface string: characters join
// directly, word and subword tokens join with spaces. The result is what
// gets handed to the external corpus-level metrics library.
func Detokenize(tokens []string, level Level) string {
	if level == LevelChar {
		return strings.Join(tokens, "")
	}
	return strings.Join(tokens, " ")
}

// BPEPostprocess recombines BPE-split tokens in a detokenized string by
// removing the "@@ " continuation markers.
func BPEPostprocess(s string) string {
	return strings.ReplaceAll(s, "@@ ", "")
}
