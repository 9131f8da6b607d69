// Package prefs persists small UI preferences across sessions.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences are independent of task data and survive logout.
type Preferences struct {
	Theme          string `json:"theme"`
	FilterPriority string `json:"filterPriority"`
	FilterStatus   string `json:"filterStatus"`
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Preferences {
	return Preferences{Theme: ThemeLight, FilterPriority: "all", FilterStatus: "all"}
}

// Load reads preferences from path. A missing or malformed file yields the
// defaults; malformed data is treated as absent, not as an error.
func Load(path string) Preferences {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults()
	}
	p := Defaults()
	if err := json.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	if p.FilterPriority == "" {
		p.FilterPriority = "all"
	}
	if p.FilterStatus == "" {
		p.FilterStatus = "all"
	}
	return p
}

// Save writes preferences to path, creating the parent directory when
// needed. Writes are fire-and-forget: local storage is assumed reliable and
// no failure is signaled to the caller.
func Save(path string, p Preferences) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0600)
}
