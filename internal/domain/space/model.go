package space

import "time"

// Space groups habits and gives them a color.
type Space struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"user_id" yaml:"user_id,omitempty"`
	Name      string    `json:"name" yaml:"name"`
	ColorKey  string    `json:"color_key" yaml:"color_key"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

// Palette lists the color keys a space may use.
var Palette = []string{"blue", "green", "red", "yellow", "purple", "orange", "pink", "teal"}

// ValidColorKey reports whether key is part of the palette.
func ValidColorKey(key string) bool {
	for _, c := range Palette {
		if c == key {
			return true
		}
	}
	return false
}

// Index returns spaces keyed by ID.
func Index(spaces []Space) map[string]Space {
	out := make(map[string]Space, len(spaces))
	for _, sp := range spaces {
		out[sp.ID] = sp
	}
	return out
}
