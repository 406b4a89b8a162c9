// Package batch turns an assembled corpus into padded id batches.
//
// Train iterators may shuffle the example pool and sort each batch by
// ascending source length to reduce padding; eval iterators preserve
// corpus order exactly. Either way the iterator makes a single pass:
// exhausting it ends iteration and the caller decides whether to build a
// new one.
package batch

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/loom-ml/loom/corpus"
	"github.com/loom-ml/loom/vocab"
)

// Options configures an iterator.
type Options struct {
	// BatchSize is the number of examples per batch. The final batch may
	// be smaller.
	BatchSize int
	// Train enables within-batch sorting by source length and makes
	// Shuffle effective.
	Train bool
	// Shuffle randomizes the example pool order (train only).
	Shuffle bool
	// Seed seeds the shuffle for reproducible epochs.
	Seed int64
}

// Batch is one materialized group of examples. Rows are padded to the
// batch's maximum length per language; the true lengths are kept
// alongside. Weights, when present, align with the batch's row order.
type Batch struct {
	Size int

	Src    [][]int64
	SrcLen []int

	// Trg rows are framed as <s> ... </s> before padding. Nil for mono
	// datasets.
	Trg    [][]int64
	TrgLen []int

	Weights [][]float64
}

// Iter yields batches from a dataset. Construct with NewIter.
type Iter struct {
	ds    *corpus.Dataset
	srcV  *vocab.Vocabulary
	trgV  *vocab.Vocabulary
	opts  Options
	order []int
	pos   int
}

// NewIter creates a single-pass batch iterator over ds.
//
// trgV may be nil for mono datasets only. The vocabulary values are used
// read-only; the dataset is not modified.
func NewIter(ds *corpus.Dataset, srcV, trgV *vocab.Vocabulary, opts Options) (*Iter, error) {
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", opts.BatchSize)
	}
	if srcV == nil {
		return nil, fmt.Errorf("source vocabulary is required")
	}
	if ds.HasTrg() && trgV == nil {
		return nil, fmt.Errorf("target vocabulary is required for %s datasets", ds.Kind)
	}

	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}
	if opts.Train && opts.Shuffle {
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	return &Iter{ds: ds, srcV: srcV, trgV: trgV, opts: opts, order: order}, nil
}

// Next returns the next batch, or nil when the dataset is exhausted.
func (it *Iter) Next() *Batch {
	if it.pos >= len(it.order) {
		return nil
	}
	end := it.pos + it.opts.BatchSize
	if end > len(it.order) {
		end = len(it.order)
	}
	indices := make([]int, end-it.pos)
	copy(indices, it.order[it.pos:end])
	it.pos = end

	if it.opts.Train {
		// Ascending source length within the batch; stable so examples of
		// equal length keep pool order.
		sort.SliceStable(indices, func(a, b int) bool {
			return len(it.ds.Examples[indices[a]].Src) < len(it.ds.Examples[indices[b]].Src)
		})
	}

	return it.build(indices)
}

func (it *Iter) build(indices []int) *Batch {
	b := &Batch{Size: len(indices)}

	srcRows := make([][]int64, len(indices))
	for i, idx := range indices {
		srcRows[i] = it.srcV.Encode(it.ds.Examples[idx].Src)
	}
	b.Src, b.SrcLen = padRows(srcRows)

	if it.ds.HasTrg() {
		trgRows := make([][]int64, len(indices))
		for i, idx := range indices {
			ids := it.trgV.Encode(it.ds.Examples[idx].Trg)
			framed := make([]int64, 0, len(ids)+2)
			framed = append(framed, vocab.BosID)
			framed = append(framed, ids...)
			framed = append(framed, vocab.EosID)
			trgRows[i] = framed
		}
		b.Trg, b.TrgLen = padRows(trgRows)
	}

	if it.ds.HasWeights() {
		b.Weights = make([][]float64, len(indices))
		for i, idx := range indices {
			b.Weights[i] = it.ds.Examples[idx].Weights
		}
	}
	return b
}

// padRows pads id rows to the length of the longest row and returns the
// rectangular grid with the true row lengths.
func padRows(rows [][]int64) ([][]int64, []int) {
	maxLen := 0
	lengths := make([]int, len(rows))
	for i, row := range rows {
		lengths[i] = len(row)
		if len(row) > maxLen {
			maxLen = len(row)
		}
	}

	grid := make([][]int64, len(rows))
	for i, row := range rows {
		padded := make([]int64, maxLen)
		copy(padded, row)
		for j := len(row); j < maxLen; j++ {
			padded[j] = vocab.PadID
		}
		grid[i] = padded
	}
	return grid, lengths
}
