package tui

type pageLayout struct {
	windowWidth  int
	windowHeight int
	inputWidth   int
	inputHeight  int
	outputWidth  int
	outputHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		inputWidth:   80,
		inputHeight:  8,
		outputWidth:  80,
		outputHeight: 8,
	}
}

// Update splits the window between the input and output panels. Everything
// else on screen (hero, options, controls, banner, status) is fixed chrome.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.inputWidth = innerWidth
	l.outputWidth = innerWidth

	const chrome = 18
	usable := height - chrome
	if usable < 8 {
		usable = 8
	}
	l.inputHeight = usable / 2
	if l.inputHeight < 4 {
		l.inputHeight = 4
	}
	l.outputHeight = usable - l.inputHeight
	if l.outputHeight < 4 {
		l.outputHeight = 4
	}
}
