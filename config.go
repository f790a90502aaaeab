package extender

import "fmt"

// Position describes where a popup is anchored relative to its target
// control. It is carried to the client runtime; no positioning math happens
// server-side.
type Position int

const (
	PositionCenter Position = iota
	PositionLeft
	PositionRight
	PositionTop
	PositionBottom
)

func (p Position) String() string {
	switch p {
	case PositionCenter:
		return "center"
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	case PositionTop:
		return "top"
	case PositionBottom:
		return "bottom"
	}
	return "center"
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	switch string(text) {
	case "center", "":
		*p = PositionCenter
	case "left":
		*p = PositionLeft
	case "right":
		*p = PositionRight
	case "top":
		*p = PositionTop
	case "bottom":
		*p = PositionBottom
	default:
		return fmt.Errorf("unknown position %q", text)
	}
	return nil
}

// AnimationRef names a client-side animation descriptor. Playback is the
// client runtime's business.
type AnimationRef string

// PopupConfig is the declarative property surface of the popup extender.
// All of it is peer configuration relayed verbatim to the client: none of
// these values interact with the close/flush lifecycle.
type PopupConfig struct {
	// PopupID identifies the element shown as the popup body.
	PopupID string `json:"popupId"`

	Position Position `json:"position"`
	OffsetX  int      `json:"offsetX"`
	OffsetY  int      `json:"offsetY"`

	// CommitProperty names the client-side property of the target control
	// that receives a committed result value.
	CommitProperty string `json:"commitProperty,omitempty"`

	// CommitScript is run client-side after a committed result is applied.
	CommitScript string `json:"commitScript,omitempty"`

	OnShow AnimationRef `json:"onShow,omitempty"`
	OnHide AnimationRef `json:"onHide,omitempty"`
}
