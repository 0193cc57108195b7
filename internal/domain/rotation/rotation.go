// Package rotation decides whether last period's history steers a new
// generation.
package rotation

import (
	"fmt"
	"strings"

	"github.com/okian/rota/internal/domain/model"
)

// Mode selects how history is treated for one generation call.
type Mode int

// Rotation modes.
const (
	// Fresh ignores history entirely.
	Fresh Mode = iota
	// Fair avoids last period's participants when picking Counting.
	Fair
)

func (m Mode) String() string {
	switch m {
	case Fresh:
		return "fresh"
	case Fair:
		return "fair"
	default:
		return "unknown"
	}
}

// ParseMode accepts "fresh" or "fair" (case-insensitive), and the menu
// shortcuts "1" and "2".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fresh", "1":
		return Fresh, nil
	case "fair", "2":
		return Fair, nil
	default:
		return Fresh, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// AvoidPool returns the set the week scheduler should steer Counting away
// from. Fair with an empty history behaves like Fresh.
func AvoidPool(mode Mode, history model.HistorySet) model.HistorySet {
	if mode != Fair || history.Len() == 0 {
		return model.HistorySet{}
	}
	out := make(model.HistorySet, history.Len())
	for p := range history {
		out[p] = struct{}{}
	}
	return out
}

// Effective reports the mode that actually applies once history is known.
func Effective(mode Mode, history model.HistorySet) Mode {
	if mode == Fair && history.Len() == 0 {
		return Fresh
	}
	return mode
}
