// Package vocab builds and holds the token↔id mapping used across the
// data-preparation pipeline.
//
// A Vocabulary is immutable once constructed. Index 0 is always the
// unknown token and indices 1-3 hold the remaining special tokens, in
// the fixed order unknown, padding, begin-of-sequence, end-of-sequence.
package vocab

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Special tokens, in their fixed vocabulary order.
const (
	UnkToken = "<unk>"
	PadToken = "<pad>"
	BosToken = "<s>"
	EosToken = "</s>"
)

// Ids of the special tokens.
const (
	UnkID int64 = 0
	PadID int64 = 1
	BosID int64 = 2
	EosID int64 = 3
)

var specials = []string{UnkToken, PadToken, BosToken, EosToken}

// Vocabulary is an ordered set of distinct tokens with an inverse lookup.
type Vocabulary struct {
	itos []string
	stoi map[string]int64
}

func newVocabulary(itos []string) (*Vocabulary, error) {
	if len(itos) == 0 || itos[UnkID] != UnkToken {
		return nil, fmt.Errorf("vocabulary must start with %q at index %d", UnkToken, UnkID)
	}
	stoi := make(map[string]int64, len(itos))
	for i, tok := range itos {
		if _, dup := stoi[tok]; dup {
			return nil, fmt.Errorf("duplicate token %q in vocabulary", tok)
		}
		stoi[tok] = int64(i)
	}
	return &Vocabulary{itos: itos, stoi: stoi}, nil
}

// Build constructs a vocabulary from a token multiset.
//
// Tokens below minFreq are dropped (minFreq of -1 disables the filter).
// Surviving tokens are ordered by descending frequency, ties broken
// alphabetically, and truncated to maxSize (negative = unbounded) before
// the special tokens are prepended. The same corpus and parameters always
// produce the same vocabulary.
func Build(tokens []string, maxSize, minFreq int) (*Vocabulary, error) {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	if minFreq > -1 {
		for tok, c := range counts {
			if c < minFreq {
				delete(counts, tok)
			}
		}
	}

	ordered := make([]string, 0, len(counts))
	for tok := range counts {
		ordered = append(ordered, tok)
	}
	// Alphabetical first, then a stable sort by descending frequency, so
	// equal-frequency tokens keep alphabetical order.
	sort.Strings(ordered)
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})

	if maxSize >= 0 && len(ordered) > maxSize {
		ordered = ordered[:maxSize]
	}

	itos := make([]string, 0, len(specials)+len(ordered))
	itos = append(itos, specials...)
	itos = append(itos, ordered...)

	if maxSize >= 0 && len(itos) > maxSize+len(specials) {
		return nil, fmt.Errorf("vocabulary size %d exceeds limit %d", len(itos), maxSize+len(specials))
	}
	return newVocabulary(itos)
}

// FromFile loads a persisted vocabulary, one token per line, in itos
// order. When the file does not already start with the unknown token the
// special tokens are prepended in their fixed order.
func FromFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file: %w", err)
	}
	defer f.Close()

	var itos []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tok := strings.TrimRight(scanner.Text(), "\r\n")
		if tok == "" {
			continue
		}
		itos = append(itos, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	if len(itos) == 0 || itos[0] != UnkToken {
		itos = append(append([]string{}, specials...), itos...)
	}
	return newVocabulary(itos)
}

// Save writes the vocabulary to path, one token per line, round-tripping
// with FromFile. Persisting the trained vocabulary guarantees train/eval
// vocabulary identity.
func (v *Vocabulary) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create vocabulary file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, tok := range v.itos {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return fmt.Errorf("failed to write vocabulary file %s: %w", path, err)
		}
	}
	return w.Flush()
}

// Len returns the vocabulary size, specials included.
func (v *Vocabulary) Len() int {
	return len(v.itos)
}

// ID returns the id of a token, or the unknown id for out-of-vocabulary
// tokens.
func (v *Vocabulary) ID(token string) int64 {
	if id, ok := v.stoi[token]; ok {
		return id
	}
	return UnkID
}

// Token returns the token at the given id.
func (v *Vocabulary) Token(id int64) string {
	if id < 0 || id >= int64(len(v.itos)) {
		panic(fmt.Sprintf("token id %d out of range [0, %d)", id, len(v.itos)))
	}
	return v.itos[id]
}

// IsUnk reports whether id maps to the unknown token.
func (v *Vocabulary) IsUnk(id int64) bool {
	return id == UnkID
}

// Tokens returns a copy of the ordered token list.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.itos))
	copy(out, v.itos)
	return out
}

// Encode maps a token sequence to ids, unknown tokens to the unknown id.
func (v *Vocabulary) Encode(tokens []string) []int64 {
	ids := make([]int64, len(tokens))
	for i, tok := range tokens {
		ids[i] = v.ID(tok)
	}
	return ids
}

// Sentence converts an id sequence back to tokens, optionally cutting the
// result off at the first end-of-sequence token.
func (v *Vocabulary) Sentence(ids []int64, cutAtEOS bool) []string {
	var out []string
	for _, id := range ids {
		tok := v.Token(id)
		if cutAtEOS && tok == EosToken {
			break
		}
		out = append(out, tok)
	}
	return out
}

// Sentences converts multiple id sequences via Sentence.
func (v *Vocabulary) Sentences(ids [][]int64, cutAtEOS bool) [][]string {
	out := make([][]string, len(ids))
	for i, row := range ids {
		out[i] = v.Sentence(row, cutAtEOS)
	}
	return out
}
