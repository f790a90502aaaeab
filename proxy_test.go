package extender

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProxyRelayDeliversViaPlaceholder(t *testing.T) {
	outer := NewScope()
	inner := NewPartialScope(outer)

	c := NewCloser(inner, "inner-target")
	_, isRelay := c.(*ProxyRelay)
	require.True(t, isRelay, "a partial scope's popup must close through a relay")

	c.Commit("x")
	require.NoError(t, outer.Process())

	// exactly one placeholder appended to the outer tree, and exactly one
	// delivery keyed by its identifier
	require.Len(t, outer.Root.Children.List, 1)
	placeholder := outer.Root.Children.List[0]
	require.NotEmpty(t, placeholder.ID)

	require.Equal(t, 1, outer.Payload().Len())
	got, ok := outer.Payload().Get(placeholder.ID)
	require.True(t, ok)
	require.Equal(t, "x", got)
}

func TestProxyRelayEmptyOuterTreeScenario(t *testing.T) {
	outer := NewScope()
	require.Empty(t, outer.Root.Children.List)

	r := NewProxyRelay(outer)
	r.Commit("done")
	require.NoError(t, outer.Process())

	require.Len(t, outer.Root.Children.List, 1)
	got, ok := outer.Payload().Get(outer.Root.Children.List[0].ID)
	require.True(t, ok)
	require.Equal(t, "done", got)
}

func TestProxyRelayCancelDeliversSentinel(t *testing.T) {
	outer := NewScope()
	r := NewProxyRelay(outer)
	r.Commit("almost")
	r.Cancel()
	require.NoError(t, outer.Process())

	require.Len(t, outer.Root.Children.List, 1)
	got, _ := outer.Payload().Get(outer.Root.Children.List[0].ID)
	require.Equal(t, CancelSentinel, got)
}

func TestProxyRelayFlushIsIdempotent(t *testing.T) {
	outer := NewScope()
	r := NewProxyRelay(outer)
	r.Commit("x")

	require.NoError(t, outer.fire(StagePreRender))
	require.NoError(t, outer.fire(StagePreRender))

	require.Len(t, outer.Root.Children.List, 1)
	require.Equal(t, 1, outer.Payload().Len())
}

func TestProxyRelayNoDecisionNoPlaceholder(t *testing.T) {
	outer := NewScope()
	NewProxyRelay(outer)
	require.NoError(t, outer.Process())

	require.Empty(t, outer.Root.Children.List)
	require.Zero(t, outer.Payload().Len())
}

func TestProxyRelaySubscribesOnce(t *testing.T) {
	outer := NewScope()
	r := NewProxyRelay(outer)
	r.subscribe()

	require.Len(t, outer.Lifecycle.list[StagePreRender].List, 1)
}

func TestNewCloserSelectsDirectSessionForPageScope(t *testing.T) {
	s := NewScope()
	c := NewCloser(s, "target")
	_, isDirect := c.(*Popup)
	require.True(t, isDirect)
}
