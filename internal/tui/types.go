package tui

import (
	"time"

	"github.com/csheth/rephrase/internal/processing"
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusParaphrase
	focusRemoveAIPhrases
	focusHumanize
	focusProcess
	focusClear
	focusCopy
	focusSample
)

var focusSequence = []focusTarget{
	focusInput,
	focusParaphrase,
	focusRemoveAIPhrases,
	focusHumanize,
	focusProcess,
	focusClear,
	focusCopy,
	focusSample,
}

type optionToggle struct {
	name   string
	label  string
	target focusTarget
}

var optionToggles = []optionToggle{
	{name: processing.OptionParaphrase, label: "Paraphrase", target: focusParaphrase},
	{name: processing.OptionRemoveAIPhrases, label: "Remove AI phrases", target: focusRemoveAIPhrases},
	{name: processing.OptionHumanize, label: "Humanize", target: focusHumanize},
}

const (
	heroTitle   = "rephrase"
	heroTagline = "Scrub AI artifacts from your writing."

	inputPlaceholder = "Paste or type the text you want to process…\n\nTip: Try pasting some AI-generated text to see the transformation!"

	defaultBannerDuration = 5 * time.Second
	defaultCopyFeedback   = 2 * time.Second
	defaultRequestTimeout = 60 * time.Second

	minViewportWidth          = 40
	viewportHorizontalPadding = 4
)
