package config

import (
	"reflect"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-errors/errors"
)

// ValidateKeys checks for duplicate keybindings and invalid key strings.
func ValidateKeys(keys *KeyBindings) error {
	// Build a map of key -> action names for duplicate detection
	keyMap := make(map[Key][]string)

	v := reflect.ValueOf(keys).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldName := t.Field(i).Name

		if field.Kind() != reflect.String {
			continue
		}

		keyStr := field.String()
		if keyStr == "" {
			continue
		}

		key, err := ParseKey(keyStr)
		if err != nil {
			return errors.WrapPrefix(err, "invalid key for "+fieldName, 0)
		}

		// Parsed keys compare equal for "ctrl+Q" and "ctrl+q".
		keyMap[key] = append(keyMap[key], fieldName)
	}

	var duplicates []string
	for key, actions := range keyMap {
		if len(actions) > 1 {
			duplicates = append(duplicates, KeyToString(key)+" is used by: "+strings.Join(actions, ", "))
		}
	}

	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return errors.Errorf("duplicate keybindings found:\n  %s", strings.Join(duplicates, "\n  "))
	}

	return nil
}

// ValidateTheme checks every theme color.
func ValidateTheme(theme *Theme) error {
	c := theme.Colors
	for name, value := range map[string]string{
		"border_focused":   c.BorderFocused,
		"border_unfocused": c.BorderUnfocused,
		"selection_bg":     c.SelectionBg,
		"statusbar_bg":     c.StatusBarBg,
		"statusbar_fg":     c.StatusBarFg,
	} {
		if value != "" && !ValidateColor(value) {
			return errors.Errorf("invalid color for %s: %q", name, value)
		}
	}
	return nil
}

// ValidateColor checks if a color string is a tcell color name or #rrggbb value.
func ValidateColor(color string) bool {
	color = strings.ToLower(strings.TrimSpace(color))
	if color == "default" {
		return true
	}
	return tcell.GetColor(color) != tcell.ColorDefault
}
