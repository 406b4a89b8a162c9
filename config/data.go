package config

import (
	"fmt"
	"os"

	"github.com/loom-ml/loom/corpus"
	"github.com/loom-ml/loom/vocab"
)

// LoadedData bundles the assembled datasets and vocabularies. Test is nil
// when no test prefix is configured; all values are immutable after
// loading and safe to share read-only.
type LoadedData struct {
	Train *corpus.Dataset
	Dev   *corpus.Dataset
	Test  *corpus.Dataset

	SrcVocab *vocab.Vocabulary
	TrgVocab *vocab.Vocabulary
}

// LoadData assembles train/dev/test datasets and both vocabularies from a
// validated configuration.
//
// The training set becomes weighted-parallel when a weight file is
// configured. Vocabularies are built from the training split only, unless
// persisted vocabulary files are configured, which guarantees train/eval
// vocabulary identity. Test data with no target-side file is loaded as a
// mono dataset.
func LoadData(cfg *Config) (*LoadedData, error) {
	d := cfg.Data

	tok, err := corpus.NewTokenizer(corpus.Level(d.Level), d.Lowercase)
	if err != nil {
		return nil, err
	}

	var train *corpus.Dataset
	if d.Weights != "" {
		train, err = corpus.LoadWeighted(d.Train, d.Src, d.Trg, d.Weights, tok, d.MaxSentLength, d.LogWeights)
	} else {
		train, err = corpus.LoadParallel(d.Train, d.Src, d.Trg, tok, d.MaxSentLength)
	}
	if err != nil {
		return nil, fmt.Errorf("train data: %w", err)
	}

	srcVocab, err := loadVocab(d.SrcVocab, train.SrcTokens(), d.VocLimit, d.VocMinFreq)
	if err != nil {
		return nil, fmt.Errorf("source vocabulary: %w", err)
	}
	trgVocab, err := loadVocab(d.TrgVocab, train.TrgTokens(), d.VocLimit, d.VocMinFreq)
	if err != nil {
		return nil, fmt.Errorf("target vocabulary: %w", err)
	}

	// Dev keeps every pair; the length filter applies to training only.
	dev, err := corpus.LoadParallel(d.Dev, d.Src, d.Trg, tok, -1)
	if err != nil {
		return nil, fmt.Errorf("dev data: %w", err)
	}

	var test *corpus.Dataset
	if d.Test != "" {
		if _, statErr := os.Stat(d.Test + "." + d.Trg); statErr == nil {
			test, err = corpus.LoadParallel(d.Test, d.Src, d.Trg, tok, -1)
		} else {
			// No reference target: inference-only source data.
			test, err = corpus.LoadMono(d.Test+"."+d.Src, tok)
		}
		if err != nil {
			return nil, fmt.Errorf("test data: %w", err)
		}
	}

	return &LoadedData{
		Train:    train,
		Dev:      dev,
		Test:     test,
		SrcVocab: srcVocab,
		TrgVocab: trgVocab,
	}, nil
}

// loadVocab loads a persisted vocabulary when a path is configured, and
// builds one from the training tokens otherwise.
func loadVocab(path string, tokens []string, maxSize, minFreq int) (*vocab.Vocabulary, error) {
	if path != "" {
		return vocab.FromFile(path)
	}
	return vocab.Build(tokens, maxSize, minFreq)
}
