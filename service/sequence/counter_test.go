package sequence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/dao/request/memory"
)

func TestCounter_DenseSequence(t *testing.T) {
	ctx := context.Background()
	requestDAO := memory.New()
	counter := NewCounter(requestDAO)

	for i := int64(1); i <= 5; i++ {
		next, err := counter.Next(ctx, model.TypeEvent)
		require.NoError(t, err)
		assert.EqualValues(t, i, next)
	}
}

func TestCounter_SeedsFromStorage(t *testing.T) {
	ctx := context.Background()
	requestDAO := memory.New()
	require.NoError(t, requestDAO.Save(ctx, &model.Request{
		ID:             "e1",
		Type:           model.TypeEvent,
		Stage:          model.StageApproved,
		SequenceNumber: 41,
		CreatedAt:      time.Now(),
	}))

	counter := NewCounter(requestDAO)
	next, err := counter.Next(ctx, model.TypeEvent)
	require.NoError(t, err)
	assert.EqualValues(t, 42, next)
}

func TestCounter_PerTypeSequences(t *testing.T) {
	ctx := context.Background()
	counter := NewCounter(memory.New())

	first, err := counter.Next(ctx, model.TypeEvent)
	require.NoError(t, err)
	other, err := counter.Next(ctx, model.TypeTask)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first)
	assert.EqualValues(t, 1, other, "types number independently")
}

func TestCounter_NoDuplicatesUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	counter := NewCounter(memory.New())

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next, err := counter.Next(ctx, model.TypeEvent)
			assert.NoError(t, err)
			results <- next
		}()
	}
	wg.Wait()
	close(results)

	seen := map[int64]bool{}
	for next := range results {
		assert.False(t, seen[next], "duplicate sequence number %v", next)
		seen[next] = true
	}
	assert.Len(t, seen, workers)
}

func TestScan_MatchesLegacyAssignment(t *testing.T) {
	ctx := context.Background()
	requestDAO := memory.New()
	scan := NewScan(requestDAO)

	next, err := scan.Next(ctx, model.TypeEvent)
	require.NoError(t, err)
	assert.EqualValues(t, 1, next, "first record numbers from 1")

	// the scan allocator only observes persisted numbers
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, requestDAO.Save(ctx, &model.Request{
			ID:             fmt.Sprintf("e%d", i),
			Type:           model.TypeEvent,
			Stage:          model.StagePendingSeniorApproval,
			SequenceNumber: i,
			CreatedAt:      time.Now(),
		}))
	}
	next, err = scan.Next(ctx, model.TypeEvent)
	require.NoError(t, err)
	assert.EqualValues(t, 4, next)
}
