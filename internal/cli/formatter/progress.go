package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a ratio as a bar like [████░░░░]  45%. Green above
// two thirds, yellow above one third, red below.
func RenderProgress(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)
	width = max(width, 2)

	filled := int(ratio * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case ratio < 0.33:
		style = StyleRed
	case ratio < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), ratio*100)
}
