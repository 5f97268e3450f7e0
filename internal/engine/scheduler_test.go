package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/meli-product-tracker/internal/notify"
)

// fakeNotifier records digests.
type fakeNotifier struct {
	mu      sync.Mutex
	digests []notify.Digest
	err     error
}

func (f *fakeNotifier) SendDigest(_ context.Context, d notify.Digest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.digests = append(f.digests, d)
	return f.err
}

func (f *fakeNotifier) sent() []notify.Digest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Digest(nil), f.digests...)
}

func TestNewScheduler_UnknownCategory(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(seedMarket(1))

	_, err := NewScheduler(
		eng, NewSession(""), &fakeNotifier{},
		"Not A Category", 10, time.Hour, quietLogger(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown refresh category")
}

func TestNewScheduler_RegistersEntry(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(seedMarket(1))

	s, err := NewScheduler(
		eng, NewSession(""), &fakeNotifier{},
		"Electronics", 10, 30*time.Minute, quietLogger(),
	)
	require.NoError(t, err)
	assert.Len(t, s.Entries(), 1)
}

func TestScheduler_RunRefresh(t *testing.T) {
	t.Parallel()

	market := seedMarket(4)
	market.items[2].Seller = nil
	eng := newTestEngine(market)

	session := NewSession("")
	notifier := &fakeNotifier{}

	s, err := NewScheduler(
		eng, session, notifier,
		"Electronics", 4, time.Hour, quietLogger(),
	)
	require.NoError(t, err)

	s.runRefresh()

	batch := session.Batch()
	require.NotNil(t, batch)
	assert.Len(t, batch.Products, 3)

	digests := notifier.sent()
	require.Len(t, digests, 1)
	assert.Equal(t, batch.ID, digests[0].BatchID)
	assert.Equal(t, "Electronics", digests[0].Category)
	assert.Equal(t, 3, digests[0].Items)
	assert.Equal(t, 1, digests[0].Skipped)
}

func TestScheduler_RunRefresh_FailureKeepsPreviousBatch(t *testing.T) {
	t.Parallel()

	market := seedMarket(2)
	eng := newTestEngine(market)

	session := NewSession("")
	notifier := &fakeNotifier{}

	s, err := NewScheduler(
		eng, session, notifier,
		"Electronics", 2, time.Hour, quietLogger(),
	)
	require.NoError(t, err)

	s.runRefresh()
	previous := session.Batch()
	require.NotNil(t, previous)

	market.searchErr = errors.New("upstream down")
	s.runRefresh()

	require.Same(t, previous, session.Batch())
	assert.Len(t, notifier.sent(), 1)
}

func TestScheduler_RunRefresh_NotifyFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(seedMarket(1))
	session := NewSession("")
	notifier := &fakeNotifier{err: errors.New("webhook down")}

	s, err := NewScheduler(
		eng, session, notifier,
		"Electronics", 1, time.Hour, quietLogger(),
	)
	require.NoError(t, err)

	s.runRefresh()

	require.NotNil(t, session.Batch())
}
