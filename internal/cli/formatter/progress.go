package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored by RatioStyle.
func RenderProgress(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)
	width = max(width, 2)

	filled := min(int(ratio*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %3.0f%%", RatioStyle(ratio).Render(bar), ratio*100)
}

// RenderCounts renders "dones/max", or a dim dash when there are no
// checkpoints.
func RenderCounts(dones, maxDones int) string {
	if maxDones == 0 {
		return Dim("-")
	}
	text := fmt.Sprintf("%d/%d", dones, maxDones)
	if dones == maxDones {
		return StyleGreen.Render(text)
	}
	return text
}
