package table

import (
	"strings"

	"github.com/rivo/uniseg"
)

// CellWidth returns the rendered width of one cell. A multi-line cell
// contributes its longest line, not its total length. Width is display
// width over grapheme clusters, so combining marks and wide runes
// measure the way a terminal draws them.
func CellWidth(cell string) int {
	max := 0
	for _, line := range strings.Split(cell, "\n") {
		if w := uniseg.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}

// ComputeWidths returns the minimum render width of each column:
// the maximum cell width down that column.
func ComputeWidths(cells [][]string) []int {
	if len(cells) == 0 {
		return nil
	}
	widths := make([]int, len(cells[0]))
	for _, row := range cells {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := CellWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}
