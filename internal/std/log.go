package std

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/packsmith/packsmith/internal/mccmd"
)

// Text is one tellraw text component.
type Text struct {
	Text   string `json:"text"`
	Color  string `json:"color,omitempty"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Tellraw builds a chat message command for target, "@a" for everyone.
// Multiple parts concatenate with their own styling.
func Tellraw(target string, parts ...Text) (mccmd.Command, error) {
	var payload any
	switch len(parts) {
	case 0:
		return nil, fmt.Errorf("tellraw needs at least one text part")
	case 1:
		payload = parts[0]
	default:
		payload = parts
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tellraw payload: %w", err)
	}
	return mccmd.Literalf("tellraw %s %s", target, string(raw)), nil
}
