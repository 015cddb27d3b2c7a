package stopwatch

import (
	"fmt"
	"strings"
)

// Format selects how durations are rendered.
type Format string

const (
	// FormatAuto renders MM:SS.CC once a minute has passed, SS.CC before.
	FormatAuto Format = "auto"
	// FormatFixed always renders SS.CC with seconds wrapped at 60.
	FormatFixed Format = "fixed"
)

// ParseFormat maps a config value onto a Format. Empty means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatFixed:
		return FormatFixed, nil
	default:
		return "", fmt.Errorf("unknown display format %q (want auto or fixed)", s)
	}
}

// Render formats ms using f.
func (f Format) Render(ms int64) string {
	if f == FormatFixed {
		return FormatFixedWidth(ms)
	}
	return FormatElapsed(ms)
}

// FormatElapsed renders ms as MM:SS.CC when at least a minute has elapsed,
// otherwise SS.CC. Minutes are not folded into hours.
func FormatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms / 1000) % 60
	centis := (ms % 1000) / 10
	if minutes > 0 {
		return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
	}
	return fmt.Sprintf("%02d.%02d", seconds, centis)
}

// FormatFixedWidth renders ms as SS.CC, always five characters wide.
func FormatFixedWidth(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d.%02d", (ms/1000)%60, (ms%1000)/10)
}
