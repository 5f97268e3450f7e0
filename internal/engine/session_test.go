package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

func TestSession_BatchLifecycle(t *testing.T) {
	t.Parallel()

	s := NewSession("mixtral-8x7b-32768")
	assert.Nil(t, s.Batch())
	assert.Equal(t, "mixtral-8x7b-32768", s.Model())

	first := &domain.EnrichedBatch{ID: "batch-1"}
	s.SetBatch(first)
	require.Same(t, first, s.Batch())

	// A refetch replaces the batch wholesale.
	second := &domain.EnrichedBatch{ID: "batch-2"}
	s.SetBatch(second)
	require.Same(t, second, s.Batch())

	s.Clear()
	assert.Nil(t, s.Batch())
}

func TestSession_SummaryLifecycle(t *testing.T) {
	t.Parallel()

	s := NewSession("mixtral-8x7b-32768")
	s.SetBatch(&domain.EnrichedBatch{ID: "batch-1"})
	s.SetSummary("prices are trending down")
	assert.Equal(t, "prices are trending down", s.Summary())

	// A new batch invalidates the old summary.
	s.SetBatch(&domain.EnrichedBatch{ID: "batch-2"})
	assert.Empty(t, s.Summary())

	s.SetSummary("fresh summary")
	cleared := s.SetModel("llama3-8b-8192")
	assert.True(t, cleared)
	assert.Empty(t, s.Summary())
}

func TestSession_ModelChangeClearsBatch(t *testing.T) {
	t.Parallel()

	s := NewSession("mixtral-8x7b-32768")
	s.SetBatch(&domain.EnrichedBatch{ID: "batch-1"})

	cleared := s.SetModel("llama3-8b-8192")
	assert.True(t, cleared)
	assert.Equal(t, "llama3-8b-8192", s.Model())
	assert.Nil(t, s.Batch())
}

func TestSession_SameModelKeepsBatch(t *testing.T) {
	t.Parallel()

	s := NewSession("mixtral-8x7b-32768")
	b := &domain.EnrichedBatch{ID: "batch-1"}
	s.SetBatch(b)

	cleared := s.SetModel("mixtral-8x7b-32768")
	assert.False(t, cleared)
	require.Same(t, b, s.Batch())
}

func TestSession_ModelChangeWithoutBatch(t *testing.T) {
	t.Parallel()

	s := NewSession("mixtral-8x7b-32768")
	cleared := s.SetModel("gemma2-9b-it")
	assert.False(t, cleared)
	assert.Equal(t, "gemma2-9b-it", s.Model())
}
