package extender

import (
	"fmt"
)

// iconRegistry maps editor icon names to the asset URLs the client runtime
// loads them from. Registration happens at package init time of the host
// application, before any request is serviced, so plain map access is fine.
var iconRegistry = make(map[string]string)

// RegisterIcon makes an icon available to toolbar buttons under the given
// name. Re-registering a name overwrites the previous URL.
func RegisterIcon(name string, url string) {
	iconRegistry[name] = url
}

// IconURL resolves a registered icon name.
func IconURL(name string) (string, bool) {
	url, ok := iconRegistry[name]
	return url, ok
}

// ToolbarButtonConfig is the declarative property surface of the toolbar
// button extender: a button added to a rich-text editor's toolbar. Pure
// configuration, no lifecycle logic.
type ToolbarButtonConfig struct {
	// Icon is the registered icon name; resolved to a URL at attach time.
	Icon    string `json:"-"`
	IconURL string `json:"iconUrl"`

	Tooltip string `json:"tooltip,omitempty"`

	// Command names the editor command the button triggers client-side.
	Command string `json:"command"`
}

// ToolbarButtonExtender adds a button to the toolbar of an existing editor
// control.
type ToolbarButtonExtender struct {
	Target *Element
	Config ToolbarButtonConfig
}

// AttachToolbarButton wires a toolbar button to an editor control. The icon
// name must have been registered beforehand.
func AttachToolbarButton(target *Element, cfg ToolbarButtonConfig) (*ToolbarButtonExtender, error) {
	if cfg.Icon != "" {
		url, ok := IconURL(cfg.Icon)
		if !ok {
			return nil, fmt.Errorf("attach toolbar button on %s: icon %q not registered", target.ID, cfg.Icon)
		}
		cfg.IconURL = url
	}
	if err := bind(target, "toolbarButton", cfg); err != nil {
		return nil, err
	}
	return &ToolbarButtonExtender{target, cfg}, nil
}

func (t *ToolbarButtonExtender) TargetID() string { return t.Target.ID }
func (t *ToolbarButtonExtender) Behavior() string { return "toolbarButton" }
