package layout

import "math"

// GridColumns returns the row width used by the grid strategy: ⌈√total⌉.
func GridColumns(total int) int {
	return int(math.Ceil(math.Sqrt(float64(total))))
}

// gridOffset places items row-major. Bottom corners count down from total so
// the grid grows away from the anchor; top corners count up from 1. The two
// conventions are not mirror images of each other and are kept that way.
func gridOffset(index, total int, spacing float64, c Corner) Offset {
	perRow := GridColumns(total)

	value := index + 1
	if c.IsBottom() {
		value = total - index
	}
	row := value / perRow
	col := value % perRow

	return Offset{
		X: c.XSign() * float64(col) * spacing,
		Y: c.YSign() * float64(row) * spacing,
	}
}
