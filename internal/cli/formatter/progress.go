package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a completion bar like "3/8 done [███░░░░░]  38%".
// The bar is green above two thirds, yellow above one third, red below.
// An empty plan renders as "0/0 done".
func RenderProgress(done, total, width int) string {
	if total <= 0 {
		return "0/0 done"
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	if width < 2 {
		width = 2
	}

	pct := float64(done) / float64(total)
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("%d/%d done [%s] %3.0f%%", done, total, style.Render(bar), pct*100)
}
