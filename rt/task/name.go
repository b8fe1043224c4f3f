package task

import (
	"fmt"
	"strings"
)

// mustName trims name and panics (configuration error) when a non-empty result contains
// anything outside [A-Za-z0-9._-]. Names end up as log values and snapshot keys.
func mustName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexFunc(name, invalidNameRune); i >= 0 {
		panic(fmt.Errorf("%w: %q: invalid char %q at %d (allowed: [A-Za-z0-9._-])", ErrInvalidName, name, name[i], i))
	}
	return name
}

func invalidNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '.' || r == '_' || r == '-':
		return false
	}
	return true
}
