package username

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulogs/wallet-backend/internal/domain"
)

// gatedLookup holds lookups for gated names until release is called
type gatedLookup struct {
	mu       sync.Mutex
	existing map[string]bool
	gates    map[string]chan struct{}
	started  chan string
}

func newGatedLookup(existing map[string]bool, gated ...string) *gatedLookup {
	g := &gatedLookup{
		existing: existing,
		gates:    make(map[string]chan struct{}),
		started:  make(chan string, 8),
	}
	for _, name := range gated {
		g.gates[name] = make(chan struct{})
	}
	return g
}

func (g *gatedLookup) AccountExists(ctx context.Context, name string) (bool, error) {
	g.started <- name

	g.mu.Lock()
	gate := g.gates[name]
	g.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return g.existing[name], nil
}

func (g *gatedLookup) release(name string) {
	close(g.gates[name])
}

func waitStarted(t *testing.T, g *gatedLookup, name string) {
	t.Helper()
	select {
	case got := <-g.started:
		require.Equal(t, name, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("lookup for %s never started", name)
	}
}

func TestField_StaleResultIsDiscarded(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	// "alice" exists but her lookup is held back; "bob" does not exist
	lookup := newGatedLookup(map[string]bool{"alice": true}, "alice")
	field := NewField(NewValidator(lookup), logger)

	aliceApplied := field.CheckAsync(ctx, "alice")
	waitStarted(t, lookup, "alice")

	// The user keeps typing; the new value resolves first
	assert.True(t, field.Check(ctx, "bob"))
	waitStarted(t, lookup, "bob")
	assert.ErrorIs(t, field.Err(), domain.ErrUserNotFound)

	// The superseded lookup resolves late and must not overwrite bob's result
	lookup.release("alice")
	assert.False(t, <-aliceApplied)

	assert.Equal(t, "bob", field.Value())
	assert.True(t, field.Resolved())
	assert.ErrorIs(t, field.Err(), domain.ErrUserNotFound)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "discarding stale username validation result", hook.LastEntry().Message)
	assert.Equal(t, "alice", hook.LastEntry().Data["requested"])
}

func TestField_CurrentResultIsApplied(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()

	lookup := newGatedLookup(map[string]bool{"alice": true}, "alice")
	field := NewField(NewValidator(lookup), logger)

	applied := field.CheckAsync(ctx, "alice")
	waitStarted(t, lookup, "alice")
	assert.False(t, field.Resolved(), "result should be pending while the lookup is in flight")

	lookup.release("alice")
	assert.True(t, <-applied)
	assert.True(t, field.Resolved())
	assert.NoError(t, field.Err())
}

func TestField_SetClearsPreviousResult(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()

	field := NewField(NewValidator(newGatedLookup(nil)), logger)

	assert.True(t, field.Check(ctx, "ab"))
	assert.ErrorIs(t, field.Err(), domain.ErrTooShort)

	field.Set("abc")
	assert.False(t, field.Resolved())
	assert.NoError(t, field.Err())
}
