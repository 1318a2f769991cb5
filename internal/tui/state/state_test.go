package state

import "testing"

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
}

func TestBodyHeight(t *testing.T) {
	if got := BodyHeight(0, false); got != 12 {
		t.Fatalf("expected default body 12, got %d", got)
	}
	if got := BodyHeight(20, false); got != 15 {
		t.Fatalf("expected body 15, got %d", got)
	}
	if got := BodyHeight(20, true); got != 14 {
		t.Fatalf("expected body 14 with status, got %d", got)
	}
	if got := BodyHeight(4, false); got != 3 {
		t.Fatalf("expected minimum body 3, got %d", got)
	}
}

func TestVisibleRange(t *testing.T) {
	heights := []int{1, 3, 3, 1, 1}
	start, end := VisibleRange(heights, 0, 5)
	if start != 0 || end != 2 {
		t.Fatalf("unexpected range %d..%d", start, end)
	}
	start, end = VisibleRange(heights, 2, 5)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected range %d..%d", start, end)
	}
	start, end = VisibleRange(heights, 1, 2)
	if start != 1 || end != 2 {
		t.Fatalf("oversized row must still be visible, got %d..%d", start, end)
	}
	if start, end = VisibleRange(nil, 0, 5); start != 0 || end != 0 {
		t.Fatalf("expected empty range, got %d..%d", start, end)
	}
}

func TestScrollTop(t *testing.T) {
	heights := []int{1, 3, 3, 1, 1}
	if got := ScrollTop(heights, 0, 1, 5); got != 0 {
		t.Fatalf("cursor visible, expected top 0, got %d", got)
	}
	if got := ScrollTop(heights, 0, 3, 5); got != 2 {
		t.Fatalf("expected top 2, got %d", got)
	}
	if got := ScrollTop(heights, 3, 1, 5); got != 1 {
		t.Fatalf("expected scroll up to 1, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	heights := []int{1, 1, 1, 1, 1, 1}
	if got := PageStep(heights, 0, 4); got != 3 {
		t.Fatalf("expected step 3, got %d", got)
	}
	if got := PageStep([]int{5}, 0, 2); got != 1 {
		t.Fatalf("expected minimum step 1, got %d", got)
	}
}
