// Package config loads and validates the YAML data configuration that
// drives corpus assembly, vocabulary construction and batching.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loom-ml/loom/corpus"
)

// Config is the top-level configuration file.
type Config struct {
	Data Data `yaml:"data"`
}

// Data configures the corpus files and preprocessing.
type Data struct {
	// Src and Trg are the language-code suffixes of the corpus files.
	Src string `yaml:"src"`
	Trg string `yaml:"trg"`

	// Train, Dev and Test are path prefixes; the language suffix is
	// appended per side. Test is optional.
	Train string `yaml:"train"`
	Dev   string `yaml:"dev"`
	Test  string `yaml:"test"`

	// Weights optionally points to a line-aligned weight file for the
	// training targets; LogWeights declares its values as log-space.
	Weights    string `yaml:"weights"`
	LogWeights bool   `yaml:"log_weights"`

	// Level is the tokenization granularity: word, char or bpe.
	Level     string `yaml:"level"`
	Lowercase bool   `yaml:"lowercase"`

	// MaxSentLength filters training pairs whose tokenized length
	// exceeds it on either side (<= 0 disables).
	MaxSentLength int `yaml:"max_sent_length"`

	// VocLimit caps the vocabulary size (-1 = unbounded); VocMinFreq
	// drops rarer tokens (-1 disables).
	VocLimit   int `yaml:"voc_limit"`
	VocMinFreq int `yaml:"voc_min_freq"`

	// SrcVocab and TrgVocab optionally load persisted vocabularies
	// instead of building them from the training data.
	SrcVocab string `yaml:"src_vocab"`
	TrgVocab string `yaml:"trg_vocab"`
}

// Load parses a YAML configuration file, applying defaults for absent
// fields (voc_limit -1, voc_min_freq 1, level word).
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Data: Data{
			Level:      string(corpus.LevelWord),
			VocLimit:   -1,
			VocMinFreq: 1,
		},
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks required fields and that every referenced corpus file
// exists, reporting the offending field and path.
func (c *Config) Validate() error {
	d := c.Data
	required := []struct{ field, value string }{
		{"data.src", d.Src},
		{"data.trg", d.Trg},
		{"data.train", d.Train},
		{"data.dev", d.Dev},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("config field %q must not be empty", r.field)
		}
	}

	switch corpus.Level(d.Level) {
	case corpus.LevelWord, corpus.LevelChar, corpus.LevelBPE:
	default:
		return fmt.Errorf("config field %q: unknown level %q", "data.level", d.Level)
	}

	paths := []struct{ field, path string }{
		{"data.train", d.Train + "." + d.Src},
		{"data.train", d.Train + "." + d.Trg},
		{"data.dev", d.Dev + "." + d.Src},
		{"data.dev", d.Dev + "." + d.Trg},
	}
	if d.Test != "" {
		// Only the source side is required; a missing target side selects
		// mono test data.
		paths = append(paths, struct{ field, path string }{"data.test", d.Test + "." + d.Src})
	}
	if d.Weights != "" {
		paths = append(paths, struct{ field, path string }{"data.weights", d.Weights})
	}
	if d.SrcVocab != "" {
		paths = append(paths, struct{ field, path string }{"data.src_vocab", d.SrcVocab})
	}
	if d.TrgVocab != "" {
		paths = append(paths, struct{ field, path string }{"data.trg_vocab", d.TrgVocab})
	}
	for _, p := range paths {
		if _, err := os.Stat(p.path); err != nil {
			return fmt.Errorf("config field %q: %w", p.field, err)
		}
	}
	return nil
}

// Describe flattens the configuration into "prefix.key : value" log
// lines.
func (c *Config) Describe(prefix string) []string {
	d := c.Data
	entries := []struct {
		key   string
		value any
	}{
		{"data.src", d.Src},
		{"data.trg", d.Trg},
		{"data.train", d.Train},
		{"data.dev", d.Dev},
		{"data.test", d.Test},
		{"data.weights", d.Weights},
		{"data.log_weights", d.LogWeights},
		{"data.level", d.Level},
		{"data.lowercase", d.Lowercase},
		{"data.max_sent_length", d.MaxSentLength},
		{"data.voc_limit", d.VocLimit},
		{"data.voc_min_freq", d.VocMinFreq},
		{"data.src_vocab", d.SrcVocab},
		{"data.trg_vocab", d.TrgVocab},
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%-34s : %v", prefix+"."+e.key, e.value)
	}
	return lines
}
