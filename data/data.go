// Package data defines the batch provider contract the loops draw from.
package data

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrExhausted is returned by Cursor.Next once every batch of the
// underlying source has been drawn. An iteration-based training run whose
// max iterations exceed the available batches fails with this error; the
// source is never recycled.
var ErrExhausted = errors.New("data source exhausted")

// Batch is one mini-batch: one row per sample, targets aligned by row.
type Batch struct {
	Inputs  *mat.Dense
	Targets *mat.Dense
}

// Size returns the number of samples in the batch.
func (b *Batch) Size() int {
	r, _ := b.Inputs.Dims()
	return r
}

// Source produces an ordered, finite sequence of batches. Len counts
// batches per pass; SampleCount is the underlying dataset size in samples,
// used for metric normalization.
type Source interface {
	Len() int
	SampleCount() int
	Batch(idx int) (*Batch, error)
}

// Cursor is a one-shot iterator over a Source, used by iteration-based
// training. It never restarts.
type Cursor struct {
	src  Source
	next int
}

func NewCursor(src Source) *Cursor {
	return &Cursor{src: src}
}

// Next draws the next batch in source order, or ErrExhausted past the end.
func (c *Cursor) Next() (*Batch, error) {
	if c.next >= c.src.Len() {
		return nil, ErrExhausted
	}
	b, err := c.src.Batch(c.next)
	if err != nil {
		return nil, err
	}
	c.next++
	return b, nil
}

// InMemorySource slices a dataset held in memory into fixed-size batches.
// The last batch may be short. Every pass revisits the same batches in the
// same order.
type InMemorySource struct {
	batches []*Batch
	samples int
}

func NewInMemorySource(inputs, targets *mat.Dense, batchSize int) (*InMemorySource, error) {
	if inputs == nil || targets == nil {
		return nil, fmt.Errorf("inputs and targets must be non-nil")
	}
	n, cols := inputs.Dims()
	tn, tcols := targets.Dims()
	if n != tn {
		return nil, fmt.Errorf("inputs have %d rows but targets have %d", n, tn)
	}
	if n == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}

	numBatches := (n + batchSize - 1) / batchSize
	batches := make([]*Batch, numBatches)
	for i := 0; i < numBatches; i++ {
		start := i * batchSize
		end := start + batchSize
		if end > n {
			end = n
		}
		batches[i] = &Batch{
			Inputs:  inputs.Slice(start, end, 0, cols).(*mat.Dense),
			Targets: targets.Slice(start, end, 0, tcols).(*mat.Dense),
		}
	}

	return &InMemorySource{batches: batches, samples: n}, nil
}

func (s *InMemorySource) Len() int {
	return len(s.batches)
}

func (s *InMemorySource) SampleCount() int {
	return s.samples
}

func (s *InMemorySource) Batch(idx int) (*Batch, error) {
	if idx < 0 || idx >= len(s.batches) {
		return nil, fmt.Errorf("batch index %d out of range [0,%d)", idx, len(s.batches))
	}
	return s.batches[idx], nil
}
