package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders have against need as a bar like [████░░░░] 3/4.
// Green once met, yellow at half or more, red below.
func RenderProgress(have, need float64, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 1.0
	if need > 0 {
		pct = have / need
	}
	pct = min(max(pct, 0), 1)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.5:
		style = StyleRed
	case pct < 1:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %s/%s", style.Render(bar), Years(have), Years(need))
}
