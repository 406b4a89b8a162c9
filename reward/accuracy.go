package reward

import (
	"fmt"
	"strings"

	"github.com/loom-ml/loom/corpus"
)

// splitLevel splits a detokenized sentence back into comparison units for
// the given granularity.
func splitLevel(s string, level corpus.Level) []string {
	if level == corpus.LevelChar {
		runes := []rune(s)
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = string(r)
		}
		return out
	}
	return strings.Fields(s)
}

// TokenAccuracy returns the percentage of hypothesis tokens that match
// the reference token at the same position. Only the first
// min(len(hyp), len(ref)) positions of each sentence are compared.
func TokenAccuracy(hypotheses, references []string, level corpus.Level) (float64, error) {
	if len(hypotheses) != len(references) {
		return 0, fmt.Errorf("token accuracy: %d hypotheses vs %d references", len(hypotheses), len(references))
	}

	correct, total := 0, 0
	for i := range hypotheses {
		hyp := splitLevel(hypotheses[i], level)
		ref := splitLevel(references[i], level)
		total += len(hyp)
		n := len(hyp)
		if len(ref) < n {
			n = len(ref)
		}
		for j := 0; j < n; j++ {
			if hyp[j] == ref[j] {
				correct++
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total) * 100, nil
}

// SequenceAccuracy returns the percentage of hypotheses that match their
// reference exactly.
func SequenceAccuracy(hypotheses, references []string) (float64, error) {
	if len(hypotheses) != len(references) {
		return 0, fmt.Errorf("sequence accuracy: %d hypotheses vs %d references", len(hypotheses), len(references))
	}
	if len(hypotheses) == 0 {
		return 0, nil
	}

	correct := 0
	for i := range hypotheses {
		if hypotheses[i] == references[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(hypotheses)) * 100, nil
}
