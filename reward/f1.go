package reward

import "fmt"

// BinaryF1 computes F1 scores for binary predictions, returning the score
// for the positive class (1) and the negative class (0).
//
// Both inputs must be equal-length arrays of 0s and 1s. Any F1 whose
// precision+recall denominator is zero is defined as 0 rather than a
// division error, so degenerate inputs (e.g. all zeros) score cleanly.
func BinaryF1(hypotheses, references []int) (f1Pos, f1Neg float64, err error) {
	if len(hypotheses) != len(references) {
		return 0, 0, fmt.Errorf("binary f1: %d hypotheses vs %d references", len(hypotheses), len(references))
	}

	var tp1, tp0, fp1, fn1 int
	for i := range hypotheses {
		h, r := hypotheses[i], references[i]
		if h != 0 && h != 1 {
			return 0, 0, fmt.Errorf("binary f1: hypothesis value %d at index %d is not 0/1", h, i)
		}
		if r != 0 && r != 1 {
			return 0, 0, fmt.Errorf("binary f1: reference value %d at index %d is not 0/1", r, i)
		}
		switch {
		case h == 1 && r == 1:
			tp1++
		case h == 0 && r == 0:
			tp0++
		case h == 1 && r == 0:
			fp1++ // false negative for class 0
		default:
			fn1++ // false positive for class 0
		}
	}

	prec1 := ratio(tp1, tp1+fp1)
	rec1 := ratio(tp1, tp1+fn1)
	f1Pos = f1(prec1, rec1)

	prec0 := ratio(tp0, tp0+fn1)
	rec0 := ratio(tp0, tp0+fp1)
	f1Neg = f1(prec0, rec0)

	return f1Pos, f1Neg, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
