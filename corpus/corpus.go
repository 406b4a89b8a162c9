// Package corpus assembles translation datasets from line-aligned text
// files.
//
// Three dataset variants exist: parallel (source + target),
// weighted-parallel (source + target + per-token or per-sentence weights)
// and mono (source only, for inference without references). Examples keep
// file line order; nothing is shuffled at load time.
package corpus

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/loom-ml/loom/vocab"
)

// Kind tags the dataset variant.
type Kind int

// Dataset variants.
const (
	Parallel Kind = iota
	WeightedParallel
	Mono
)

// String returns a human-readable variant name.
func (k Kind) String() string {
	switch k {
	case Parallel:
		return "parallel"
	case WeightedParallel:
		return "weighted-parallel"
	case Mono:
		return "mono"
	default:
		return "unknown"
	}
}

// Example is one sentence pair. Trg is nil for mono examples; Weights is
// nil unless the dataset is weighted, in which case it holds one value per
// target token or a single sentence-level value. Examples are never
// mutated after assembly.
type Example struct {
	Src     []string
	Trg     []string
	Weights []float64
}

// Dataset is an ordered sequence of examples with language tags.
type Dataset struct {
	Kind     Kind
	SrcLang  string
	TrgLang  string
	Examples []Example
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.Examples)
}

// HasTrg reports whether examples carry target sequences.
func (d *Dataset) HasTrg() bool {
	return d.Kind != Mono
}

// HasWeights reports whether examples carry weight vectors.
func (d *Dataset) HasWeights() bool {
	return d.Kind == WeightedParallel
}

// withinLength reports whether both sides pass the length filter.
// maxLen <= 0 disables filtering.
func withinLength(src, trg []string, maxLen int) bool {
	if maxLen <= 0 {
		return true
	}
	return len(src) <= maxLen && len(trg) <= maxLen
}

// LoadParallel reads the two line-aligned files prefix.<srcLang> and
// prefix.<trgLang>. Pairs where either trimmed line is blank, or either
// tokenized side exceeds maxLen, are skipped.
func LoadParallel(prefix, srcLang, trgLang string, tok *Tokenizer, maxLen int) (*Dataset, error) {
	srcPath := prefix + "." + srcLang
	trgPath := prefix + "." + trgLang

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source corpus: %w", err)
	}
	defer srcFile.Close()

	trgFile, err := os.Open(trgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open target corpus: %w", err)
	}
	defer trgFile.Close()

	ds := &Dataset{Kind: Parallel, SrcLang: srcLang, TrgLang: trgLang}
	srcScan := bufio.NewScanner(srcFile)
	trgScan := bufio.NewScanner(trgFile)
	for srcScan.Scan() && trgScan.Scan() {
		srcLine := strings.TrimSpace(srcScan.Text())
		trgLine := strings.TrimSpace(trgScan.Text())
		if srcLine == "" || trgLine == "" {
			continue
		}
		src := tok.Tokenize(srcLine)
		trg := tok.Tokenize(trgLine)
		if !withinLength(src, trg, maxLen) {
			continue
		}
		ds.Examples = append(ds.Examples, Example{Src: src, Trg: trg})
	}
	if err := firstScanErr(srcScan, trgScan); err != nil {
		return nil, fmt.Errorf("failed to read corpus %s/%s: %w", srcPath, trgPath, err)
	}
	return ds, nil
}

// LoadWeighted reads prefix.<srcLang>, prefix.<trgLang> and a third
// line-aligned weight file. Each weight line is whitespace-split into
// floats; with logWeights the values are exponentiated out of log space.
// A non-numeric weight token is a fatal parse error.
//
// The three files are consumed in lock-step, so iteration stops at the
// shortest file and trailing lines in longer files are silently dropped.
// Callers needing strict alignment must compare line counts beforehand.
func LoadWeighted(prefix, srcLang, trgLang, weightPath string, tok *Tokenizer,
	maxLen int, logWeights bool) (*Dataset, error) {

	srcPath := prefix + "." + srcLang
	trgPath := prefix + "." + trgLang

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source corpus: %w", err)
	}
	defer srcFile.Close()

	trgFile, err := os.Open(trgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open target corpus: %w", err)
	}
	defer trgFile.Close()

	weightFile, err := os.Open(weightPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open weight file: %w", err)
	}
	defer weightFile.Close()

	ds := &Dataset{Kind: WeightedParallel, SrcLang: srcLang, TrgLang: trgLang}
	srcScan := bufio.NewScanner(srcFile)
	trgScan := bufio.NewScanner(trgFile)
	weightScan := bufio.NewScanner(weightFile)
	lineNo := 0
	for srcScan.Scan() && trgScan.Scan() && weightScan.Scan() {
		lineNo++
		weights, err := parseWeights(weightScan.Text(), logWeights)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", weightPath, lineNo, err)
		}
		srcLine := strings.TrimSpace(srcScan.Text())
		trgLine := strings.TrimSpace(trgScan.Text())
		if srcLine == "" || trgLine == "" {
			continue
		}
		src := tok.Tokenize(srcLine)
		trg := tok.Tokenize(trgLine)
		if !withinLength(src, trg, maxLen) {
			continue
		}
		ds.Examples = append(ds.Examples, Example{Src: src, Trg: trg, Weights: weights})
	}
	if err := firstScanErr(srcScan, trgScan, weightScan); err != nil {
		return nil, fmt.Errorf("failed to read weighted corpus %s: %w", prefix, err)
	}
	return ds, nil
}

// LoadMono reads a single file into source-only examples, skipping blank
// lines. Used for inference data without references.
func LoadMono(path string, tok *Tokenizer) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	ds := &Dataset{Kind: Mono}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ds.Examples = append(ds.Examples, Example{Src: tok.Tokenize(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	return ds, nil
}

// parseWeights splits one weight line into floats, moving values out of
// log space when requested.
func parseWeights(line string, logWeights bool) ([]float64, error) {
	fields := strings.Fields(line)
	weights := make([]float64, len(fields))
	for i, field := range fields {
		w, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed weight %q: %w", field, err)
		}
		if logWeights {
			w = math.Exp(w)
		}
		weights[i] = w
	}
	return weights, nil
}

// firstScanErr returns the first scanner error, if any.
func firstScanErr(scanners ...*bufio.Scanner) error {
	for _, s := range scanners {
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}

// SrcTokens returns all source tokens of the dataset in order, the input
// for source vocabulary construction.
func (d *Dataset) SrcTokens() []string {
	var tokens []string
	for _, ex := range d.Examples {
		tokens = append(tokens, ex.Src...)
	}
	return tokens
}

// TrgTokens returns all target tokens of the dataset in order, the input
// for target vocabulary construction.
func (d *Dataset) TrgTokens() []string {
	var tokens []string
	for _, ex := range d.Examples {
		tokens = append(tokens, ex.Trg...)
	}
	return tokens
}

// DataInfo summarizes datasets and vocabularies as log lines, in the
// order train, dev, test. Nil datasets are reported as absent.
func DataInfo(train, dev, test *Dataset, srcVocab, trgVocab *vocab.Vocabulary) []string {
	sizeOf := func(d *Dataset) string {
		if d == nil {
			return "N/A"
		}
		return strconv.Itoa(d.Len())
	}

	lines := []string{
		fmt.Sprintf("Data set sizes: train %s, valid %s, test %s",
			sizeOf(train), sizeOf(dev), sizeOf(test)),
	}
	if train != nil && train.Len() > 0 {
		first := train.Examples[0]
		lines = append(lines,
			fmt.Sprintf("First training example: [SRC] %s [TRG] %s",
				strings.Join(first.Src, " "), strings.Join(first.Trg, " ")))
	}
	head := func(v *vocab.Vocabulary) string {
		tokens := v.Tokens()
		if len(tokens) > 10 {
			tokens = tokens[:10]
		}
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = fmt.Sprintf("(%d) %s", i, tok)
		}
		return strings.Join(parts, " ")
	}
	if srcVocab != nil {
		lines = append(lines,
			fmt.Sprintf("First 10 words (src): %s", head(srcVocab)),
			fmt.Sprintf("Number of src words (types): %d", srcVocab.Len()))
	}
	if trgVocab != nil {
		lines = append(lines,
			fmt.Sprintf("First 10 words (trg): %s", head(trgVocab)),
			fmt.Sprintf("Number of trg words (types): %d", trgVocab.Len()))
	}
	return lines
}
