// Package nav holds the entities menu the administrative front end
// renders. The menu is an immutable table built once at startup; serving
// it as data means adding an entity never requires a front-end rebuild.
package nav

import (
	"github.com/gedex/inflector"

	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
)

// Entry is one row of the menu. Route, label key and API path all derive
// from the entity name so the three can never drift apart.
type Entry struct {
	Name     string `json:"name"`
	Route    string `json:"route"`
	LabelKey string `json:"labelKey"`
	Icon     string `json:"icon"`
	APIPath  string `json:"apiPath"`
}

const defaultIcon = "asterisk"

func newEntry(name, icon string) Entry {
	return Entry{
		Name:     name,
		Route:    "/entity/" + name,
		LabelKey: "global.menu.entities." + name,
		Icon:     icon,
		APIPath:  "/api/" + inflector.Pluralize(name),
	}
}

// Default returns the built-in menu, one entry per catalog entity.
func Default() []Entry {
	return []Entry{
		newEntry("author", defaultIcon),
		newEntry("book", defaultIcon),
		newEntry("comment", defaultIcon),
		newEntry("publisher", defaultIcon),
	}
}

// FromConfig builds the menu from the YAML override, falling back to the
// built-in table when none is given. The override replaces the whole
// table, keeping its order.
func FromConfig(entries []config.MenuEntry) []Entry {
	if len(entries) == 0 {
		return Default()
	}
	menu := make([]Entry, 0, len(entries))
	for _, e := range entries {
		icon := e.Icon
		if icon == "" {
			icon = defaultIcon
		}
		menu = append(menu, newEntry(e.Name, icon))
	}
	return menu
}
