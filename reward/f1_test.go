package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryF1AllZerosDefinedAsZero(t *testing.T) {
	zeros := make([]int, 5)

	f1Pos, f1Neg, err := BinaryF1(zeros, zeros)
	require.NoError(t, err)

	// No positive predictions or references: positive F1 is defined 0,
	// not a division error. The negative class is perfect.
	assert.Equal(t, 0.0, f1Pos)
	assert.Equal(t, 1.0, f1Neg)
}

func TestBinaryF1Perfect(t *testing.T) {
	f1Pos, f1Neg, err := BinaryF1([]int{1, 0, 1, 0}, []int{1, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, f1Pos)
	assert.Equal(t, 1.0, f1Neg)
}

func TestBinaryF1Mixed(t *testing.T) {
	// hyp vs ref: tp1=1, fp1=1, fn1=1, tp0=1.
	f1Pos, f1Neg, err := BinaryF1([]int{1, 1, 0, 0}, []int{1, 0, 1, 0})
	require.NoError(t, err)

	// prec1 = rec1 = 0.5 -> F1 = 0.5; same for the negative class.
	assert.InDelta(t, 0.5, f1Pos, 1e-9)
	assert.InDelta(t, 0.5, f1Neg, 1e-9)
}

func TestBinaryF1LengthMismatch(t *testing.T) {
	_, _, err := BinaryF1([]int{1}, []int{1, 0})
	assert.Error(t, err)
}

func TestBinaryF1RejectsNonBinaryValues(t *testing.T) {
	_, _, err := BinaryF1([]int{2}, []int{1})
	assert.Error(t, err)

	_, _, err = BinaryF1([]int{1}, []int{-1})
	assert.Error(t, err)
}
