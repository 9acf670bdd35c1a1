package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	l := newPageLayout()
	l.Update(120, 50)
	if l.inputWidth != 120-viewportHorizontalPadding {
		t.Fatalf("unexpected input width %d", l.inputWidth)
	}
	if l.outputWidth != l.inputWidth {
		t.Fatalf("panels should share a width, got %d and %d", l.inputWidth, l.outputWidth)
	}
	if l.inputHeight+l.outputHeight != 50-18 {
		t.Fatalf("panels should fill the usable height, got %d+%d", l.inputHeight, l.outputHeight)
	}
}

func TestPageLayoutClampsSmallWindows(t *testing.T) {
	l := newPageLayout()
	l.Update(10, 5)
	if l.inputWidth != minViewportWidth {
		t.Fatalf("width should clamp to %d, got %d", minViewportWidth, l.inputWidth)
	}
	if l.inputHeight < 4 || l.outputHeight < 4 {
		t.Fatalf("heights should clamp, got %d and %d", l.inputHeight, l.outputHeight)
	}
}
