package beam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-ml/loom/tensor"
)

func TestTileTensorGroupsBeamRows(t *testing.T) {
	// Two examples with two features each.
	x, err := tensor.FromSlice([]float32{
		1, 2, // row 0
		3, 4, // row 1
	}, tensor.Shape{2, 2})
	require.NoError(t, err)

	tiled, err := TileTensor(x, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{6, 2}, tiled.Shape())
	// row0 x3, then row1 x3, not alternating.
	want := []float32{
		1, 2,
		1, 2,
		1, 2,
		3, 4,
		3, 4,
		3, 4,
	}
	assert.Equal(t, want, tiled.Data())
}

func TestTileTensorCountOne(t *testing.T) {
	x, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	tiled, err := TileTensor(x, 1, 0)
	require.NoError(t, err)
	assert.True(t, tiled.Equal(x))
}

func TestTileTensorNonBatchAxis(t *testing.T) {
	x, err := tensor.FromSlice([]float32{
		1, 2,
		3, 4,
	}, tensor.Shape{2, 2})
	require.NoError(t, err)

	tiled, err := TileTensor(x, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 4}, tiled.Shape())
	// Column i expands to columns i*2 and i*2+1.
	want := []float32{
		1, 1, 2, 2,
		3, 3, 4, 4,
	}
	assert.Equal(t, want, tiled.Data())
}

func TestTileTensor3DKeepsTrailingDims(t *testing.T) {
	x, err := tensor.FromSlice([]float64{
		1, 2, 3, 4, // example 0
		5, 6, 7, 8, // example 1
	}, tensor.Shape{2, 2, 2})
	require.NoError(t, err)

	tiled, err := TileTensor(x, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{4, 2, 2}, tiled.Shape())
	want := []float64{
		1, 2, 3, 4,
		1, 2, 3, 4,
		5, 6, 7, 8,
		5, 6, 7, 8,
	}
	assert.Equal(t, want, tiled.Data())
}

func TestTileSingleState(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 1})
	require.NoError(t, err)

	out, err := Tile[float32](Single[float32]{Value: x}, 2, 0)
	require.NoError(t, err)

	single, ok := out.(Single[float32])
	require.True(t, ok)
	assert.Equal(t, []float32{1, 1, 2, 2}, single.Value.Data())
}

func TestTilePairedState(t *testing.T) {
	h, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 1})
	require.NoError(t, err)
	c, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2, 1})
	require.NoError(t, err)

	out, err := Tile[float32](Paired[float32]{First: h, Second: c}, 2, 0)
	require.NoError(t, err)

	paired, ok := out.(Paired[float32])
	require.True(t, ok)
	assert.Equal(t, []float32{1, 1, 2, 2}, paired.First.Data())
	assert.Equal(t, []float32{3, 3, 4, 4}, paired.Second.Data())
}

func TestTileTensorErrors(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 1})
	require.NoError(t, err)

	_, err = TileTensor(x, 0, 0)
	assert.Error(t, err)

	_, err = TileTensor(x, 2, 2)
	assert.Error(t, err)

	_, err = TileTensor(x, 2, -1)
	assert.Error(t, err)
}
