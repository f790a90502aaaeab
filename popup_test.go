package extender

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPopupLastWriteWins(t *testing.T) {
	tests := []struct {
		name  string
		calls func(Closer)
		want  string
	}{
		{
			name:  "single commit",
			calls: func(c Closer) { c.Commit("42") },
			want:  "42",
		},
		{
			name:  "single cancel",
			calls: func(c Closer) { c.Cancel() },
			want:  CancelSentinel,
		},
		{
			name:  "cancel then commit",
			calls: func(c Closer) { c.Cancel(); c.Commit("ok") },
			want:  "ok",
		},
		{
			name:  "commit then cancel",
			calls: func(c Closer) { c.Commit("v1"); c.Cancel() },
			want:  CancelSentinel,
		},
		{
			name:  "repeated commits",
			calls: func(c Closer) { c.Commit("v1"); c.Commit("v2"); c.Commit("v3") },
			want:  "v3",
		},
		{
			name:  "empty string commit is relayed verbatim",
			calls: func(c Closer) { c.Commit("") },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScope()
			p := NewPopup(s, "target")
			tt.calls(p)
			require.NoError(t, s.Process())

			got, ok := s.Payload().Get("target")
			require.True(t, ok, "expected a delivery for the target")
			require.Equal(t, tt.want, got)
			require.Equal(t, 1, s.Payload().Len())
		})
	}
}

func TestPopupFlushIsIdempotent(t *testing.T) {
	s := NewScope()
	p := NewPopup(s, "target")
	p.Commit("once")

	require.NoError(t, s.fire(StagePreRender))
	// a second firing of the checkpoint must not deliver again, even if a
	// new decision was recorded in between
	p.Commit("twice")
	require.NoError(t, s.fire(StagePreRender))

	require.Equal(t, 1, s.Payload().Len())
	got, _ := s.Payload().Get("target")
	require.Equal(t, "once", got)
}

func TestPopupNoDecisionNoDelivery(t *testing.T) {
	s := NewScope()
	NewPopup(s, "target")
	require.NoError(t, s.Process())
	require.Zero(t, s.Payload().Len())
}

func TestCommitAfterCheckpointIsClientInvisible(t *testing.T) {
	s := NewScope()
	p := NewPopup(s, "target")

	// record the decision after the checkpoint has passed, from a later
	// pipeline stage
	s.AddStageListener(StageRender, NewStageHandler(func(evt *StageEvent) error {
		p.Commit("late")
		return nil
	}))

	require.NoError(t, s.Process())
	require.Zero(t, s.Payload().Len())
}

func TestPopupSubscribesToCheckpointOnce(t *testing.T) {
	s := NewScope()
	p := NewPopup(s, "target")
	// reaching the attach point again during setup must not double-register
	p.subscribe()
	p.subscribe()

	require.Len(t, s.Lifecycle.list[StagePreRender].List, 1)
}

func TestAttachPopupEmitsBinding(t *testing.T) {
	s := NewScope()
	target := NewElement("input", "date-field")
	s.Root.AppendChild(target)

	ext, err := AttachPopup(s, target, PopupConfig{
		PopupID:  "calendar",
		Position: PositionBottom,
		OffsetX:  4,
		OffsetY:  -2,
	})
	require.NoError(t, err)
	require.Equal(t, "date-field", ext.TargetID())

	require.Len(t, target.Bindings, 1)
	b := target.Bindings[0]
	require.Equal(t, "popup", b.Behavior)
	require.Equal(t, "date-field", b.TargetID)

	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Config, &cfg))
	require.Equal(t, "calendar", cfg["popupId"])
	require.Equal(t, "bottom", cfg["position"])
	require.Equal(t, float64(4), cfg["offsetX"])
}

func TestAttachedPopupRoundTrip(t *testing.T) {
	s := NewScope()
	target := NewElement("input", "date-field")
	s.Root.AppendChild(target)

	ext, err := AttachPopup(s, target, PopupConfig{PopupID: "calendar"})
	require.NoError(t, err)

	ext.Commit("2026-08-25")
	require.NoError(t, s.Process())

	got, ok := s.Payload().Get("date-field")
	require.True(t, ok)
	require.Equal(t, "2026-08-25", got)
}
