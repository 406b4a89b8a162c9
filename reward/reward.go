// Package reward computes per-token reward signals from gold and
// predicted id grids, used to shape reinforcement-augmented training.
//
// All reward functions take two equal-shaped (batch × time) grids and
// return a float grid of the same shape. Rows are scored independently;
// there is no cross-row interaction. Corpus-level quality metrics (BLEU,
// chrF) are computed by an external library on detokenized strings and
// are out of scope here.
package reward

import "fmt"

// checkGrids verifies that gold and pred are rectangular and share the
// same batch × time shape.
func checkGrids(gold, pred [][]int64) error {
	if len(gold) != len(pred) {
		return fmt.Errorf("gold has %d rows, pred has %d", len(gold), len(pred))
	}
	for r := range pred {
		if len(gold[r]) != len(pred[r]) {
			return fmt.Errorf("row %d: gold width %d, pred width %d", r, len(gold[r]), len(pred[r]))
		}
		if len(pred[r]) != len(pred[0]) {
			return fmt.Errorf("row %d: ragged grid (width %d, want %d)", r, len(pred[r]), len(pred[0]))
		}
	}
	return nil
}

// PositionReward scores each predicted position against the gold id at
// that position: 1.0 for an exact match, 0 otherwise.
//
// With shifted enabled, a predicted id that occurs elsewhere in the row's
// gold sequence earns partial credit 1 - d/L, where d is the minimum
// absolute distance from the current position to any gold occurrence and
// L is the row width. When several occurrences are equidistant any of
// them yields the same reward.
func PositionReward(gold, pred [][]int64, shifted bool) ([][]float64, error) {
	if err := checkGrids(gold, pred); err != nil {
		return nil, fmt.Errorf("position reward: %w", err)
	}

	rewards := make([][]float64, len(pred))
	for r := range pred {
		g, p := gold[r], pred[r]
		width := len(p)
		row := make([]float64, width)
		for k, pid := range p {
			if pid == g[k] {
				row[k] = 1.0
				continue
			}
			if !shifted {
				continue
			}
			closest := -1
			for idx, gid := range g {
				if gid != pid {
					continue
				}
				d := k - idx
				if d < 0 {
					d = -d
				}
				if closest < 0 || d < closest {
					closest = d
				}
			}
			if closest >= 0 {
				row[k] = 1.0 - float64(closest)/float64(width)
			}
		}
		rewards[r] = row
	}
	return rewards, nil
}

// LCSReward marks the predicted positions covered by the longest
// contiguous run of positions matching the gold sequence letter for
// letter (longest common substring, not subsequence) with 1.0, and all
// other positions with 0.
//
// When several runs share the maximum length, the run encountered last is
// kept, scanning predicted positions in increasing order and, within
// each, gold positions in increasing order.
func LCSReward(gold, pred [][]int64) ([][]float64, error) {
	if err := checkGrids(gold, pred); err != nil {
		return nil, fmt.Errorf("lcs reward: %w", err)
	}

	rewards := make([][]float64, len(pred))
	for r := range pred {
		rewards[r] = longestCommonRun(pred[r], gold[r])
	}
	return rewards, nil
}

// longestCommonRun runs the classical quadratic DP: m[x][y] holds the
// length of the matched run ending at pred position x and gold position y.
func longestCommonRun(pred, gold []int64) []float64 {
	m := make([][]int, len(pred)+1)
	for x := range m {
		m[x] = make([]int, len(gold)+1)
	}

	longest, predEnd := 0, 0
	for x := 1; x <= len(pred); x++ {
		for y := 1; y <= len(gold); y++ {
			if pred[x-1] != gold[y-1] {
				continue
			}
			m[x][y] = m[x-1][y-1] + 1
			// >= keeps the run seen last among equal-length runs.
			if m[x][y] >= longest {
				longest = m[x][y]
				predEnd = x
			}
		}
	}

	rewards := make([]float64, len(pred))
	for k := predEnd - longest; k < predEnd; k++ {
		rewards[k] = 1.0
	}
	return rewards
}

// RecallReward scores position t with 1 if the predicted id at t occurs
// anywhere in the row's gold sequence, regardless of position, else 0.
func RecallReward(gold, pred [][]int64) ([][]float64, error) {
	if err := checkGrids(gold, pred); err != nil {
		return nil, fmt.Errorf("recall reward: %w", err)
	}

	rewards := make([][]float64, len(pred))
	for r := range pred {
		inGold := make(map[int64]struct{}, len(gold[r]))
		for _, gid := range gold[r] {
			inGold[gid] = struct{}{}
		}
		row := make([]float64, len(pred[r]))
		for k, pid := range pred[r] {
			if _, ok := inGold[pid]; ok {
				row[k] = 1.0
			}
		}
		rewards[r] = row
	}
	return rewards, nil
}
