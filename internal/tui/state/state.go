package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// BodyHeight is the number of lines left for cells once the chrome is drawn.
func BodyHeight(height int, hasStatus bool) int {
	if height <= 0 {
		return 12
	}
	chromeLines := 5
	if hasStatus {
		chromeLines++
	}
	body := height - chromeLines
	if body < 3 {
		body = 3
	}
	return body
}

// VisibleRange returns the [top,end) range of rows that fit in budget lines
// starting at top. At least one row is visible when rows exist.
func VisibleRange(heights []int, top, budget int) (int, int) {
	if len(heights) == 0 {
		return 0, 0
	}
	top = ClampCursor(top, len(heights))
	used := 0
	end := top
	for end < len(heights) {
		if used+heights[end] > budget && end > top {
			break
		}
		used += heights[end]
		end++
	}
	return top, end
}

// ScrollTop returns the smallest change to top that keeps cursor inside the
// visible range.
func ScrollTop(heights []int, top, cursor, budget int) int {
	if len(heights) == 0 {
		return 0
	}
	cursor = ClampCursor(cursor, len(heights))
	top = ClampCursor(top, len(heights))
	if cursor < top {
		return cursor
	}
	for {
		_, end := VisibleRange(heights, top, budget)
		if cursor < end || top >= cursor {
			return top
		}
		top++
	}
}

// PageStep is how many rows a page jump moves.
func PageStep(heights []int, top, budget int) int {
	start, end := VisibleRange(heights, top, budget)
	step := end - start - 1
	if step < 1 {
		step = 1
	}
	return step
}
