package doc

import (
	"bytes"
	"strings"
	"testing"

	ext "github.com/atdiar/extender"

	"github.com/stretchr/testify/require"
)

func TestRenderRequiresProcessedScope(t *testing.T) {
	s := ext.NewScope()
	var buf bytes.Buffer
	require.ErrorIs(t, Render(&buf, s), ErrUnprocessedScope)
}

func TestRenderDeliversPayloadIsland(t *testing.T) {
	s := ext.NewScope()
	target := ext.NewElement("input", "date-field")
	s.Root.AppendChild(target)

	popup, err := ext.AttachPopup(s, target, ext.PopupConfig{
		PopupID:  "calendar",
		Position: ext.PositionBottom,
	})
	require.NoError(t, err)
	popup.Commit("2026-08-25")
	require.NoError(t, s.Process())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
	out := buf.String()

	require.True(t, strings.Contains(out, `id="date-field"`), out)
	require.True(t, strings.Contains(out, `data-xt-popup=`), out)
	require.True(t, strings.Contains(out, `id="`+PayloadScriptID+`"`), out)
	require.True(t, strings.Contains(out, `"targetId":"date-field"`), out)
	require.True(t, strings.Contains(out, `"value":"2026-08-25"`), out)
}

func TestRenderEmptyPayload(t *testing.T) {
	s := ext.NewScope()
	require.NoError(t, s.Process())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
	require.True(t, strings.Contains(buf.String(), "[]"))
}

func TestNewHTMLNodeAttributes(t *testing.T) {
	e := ext.NewElement("span", "carrier")
	e.Set("hidden", "hidden")

	n := NewHTMLNode(e)
	require.Equal(t, "span", n.Data)

	attrs := make(map[string]string)
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	require.Equal(t, "carrier", attrs["id"])
	require.Equal(t, "hidden", attrs["hidden"])
}
