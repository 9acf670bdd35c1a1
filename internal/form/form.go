// Package form holds the text-processing form controller: input and option
// state, validation, the idle/loading/success/error state machine, and a
// single Render that derives what the UI should show.
package form

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/csheth/rephrase/internal/processing"
)

// State is the form's position in the request lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	MessageEmptyInput = "Please enter some text to process."
	MessageNoOption   = "Please select at least one processing option."
	MessageCopyFailed = "Failed to copy text to clipboard"
	requestErrPrefix  = "Error processing text: "

	copyLabel       = "Copy"
	copiedLabel     = "Copied!"
	appliedPrefix   = "Applied: "
	charCountSuffix = " characters"
)

// SampleText is a paragraph full of common AI-writing artifacts.
const SampleText = "However, as an AI language model, I must note that it's important to understand that artificial intelligence has significantly transformed the way we process information. Furthermore, it should be noted that these technologies facilitate enhanced communication and demonstrate remarkable capabilities. Additionally, I hope this information is helpful for your understanding of the subject matter."

var (
	ErrEmptyInput = errors.New(MessageEmptyInput)
	ErrNoOption   = errors.New(MessageNoOption)
	ErrBusy       = errors.New("a request is already in flight")
)

// Submission is a validated request ready to be sent. Generation identifies
// it when the response comes back.
type Submission struct {
	Generation uint64
	Request    processing.Request
}

// Form is the controller. It is not safe for concurrent use; callers drive it
// from a single event loop.
type Form struct {
	input   string
	options processing.Options

	state    State
	result   *processing.Result
	output   string
	summary  string
	inflight uint64
	nextGen  uint64
	// completions for generations at or below this mark are discarded
	clearedThrough uint64

	banner    string
	bannerSeq uint64

	copied  bool
	copySeq uint64

	focusInput   bool
	scrollOutput bool
}

// New returns an idle form with the given initial option state.
func New(options processing.Options) *Form {
	return &Form{options: options, state: StateIdle}
}

// SetInput replaces the input text and recomputes the character count.
func (f *Form) SetInput(text string) {
	f.input = text
	f.UpdateCharCount()
}

// Input returns the current raw input.
func (f *Form) Input() string {
	return f.input
}

// UpdateCharCount recomputes the input character count. Rendering derives
// the submit control's enablement from it.
func (f *Form) UpdateCharCount() int {
	return utf8.RuneCountInString(f.input)
}

// Options returns the current option selection.
func (f *Form) Options() processing.Options {
	return f.options
}

// SetOptions replaces the option selection.
func (f *Form) SetOptions(options processing.Options) {
	f.options = options
}

// ToggleOption flips one named option.
func (f *Form) ToggleOption(name string) {
	f.options = f.options.Toggle(name)
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	return f.state
}

// Loading reports whether a request is in flight.
func (f *Form) Loading() bool {
	return f.state == StateLoading
}

// Result returns the last rendered result, or nil after a clear.
func (f *Form) Result() *processing.Result {
	return f.result
}

// Output returns the rendered output text.
func (f *Form) Output() string {
	return f.output
}

// Submit validates the form and moves it into Loading. Validation failures
// show the banner and return an error without changing the state, so no
// request must be issued.
func (f *Form) Submit() (Submission, error) {
	if f.state == StateLoading {
		return Submission{}, ErrBusy
	}
	text := trimInput(f.input)
	if text == "" {
		f.ShowError(MessageEmptyInput)
		return Submission{}, ErrEmptyInput
	}
	if !f.options.Any() {
		f.ShowError(MessageNoOption)
		return Submission{}, ErrNoOption
	}
	f.nextGen++
	f.inflight = f.nextGen
	f.state = StateLoading
	return Submission{
		Generation: f.inflight,
		Request: processing.Request{
			Text:    text,
			Options: f.options,
		},
	}, nil
}

// Complete settles the request identified by generation. Loading is always
// cleared for the in-flight generation, whatever the outcome. It reports
// whether the outcome was applied. Replies for any other generation, and for
// requests issued before the latest Clear, are dropped.
func (f *Form) Complete(generation uint64, result processing.Result, err error) bool {
	// only the in-flight request may settle the form
	if generation == 0 || generation != f.inflight {
		return false
	}
	f.inflight = 0
	f.state = StateIdle
	if f.result != nil {
		f.state = StateSuccess
	}
	if generation <= f.clearedThrough {
		return false
	}
	if err != nil {
		f.state = StateError
		f.ShowError(requestErrPrefix + requestErrorMessage(err))
		return true
	}
	res := result
	if res.OptionsApplied == nil {
		res.OptionsApplied = map[string]bool{}
	}
	f.result = &res
	f.output = res.ProcessedText
	f.summary = appliedPrefix + strings.Join(processing.AppliedLabels(res.OptionsApplied), ", ")
	f.state = StateSuccess
	f.scrollOutput = true
	return true
}

// trimInput strips whitespace and byte order marks from both ends.
func trimInput(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

func requestErrorMessage(err error) string {
	var apiErr *processing.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return processing.FallbackErrorMessage
}

// Clear empties input and output and hides the output section. An in-flight
// request keeps the form loading, but its outcome will be discarded.
func (f *Form) Clear() {
	f.input = ""
	f.output = ""
	f.summary = ""
	f.result = nil
	f.copied = false
	f.clearedThrough = f.nextGen
	if f.state != StateLoading {
		f.state = StateIdle
	}
	f.UpdateCharCount()
	f.focusInput = true
}

// LoadSample fills the input with SampleText.
func (f *Form) LoadSample() {
	f.SetInput(SampleText)
}

// ShowError displays message on the banner and returns the sequence number
// an expiry must carry to hide it.
func (f *Form) ShowError(message string) uint64 {
	f.bannerSeq++
	f.banner = message
	return f.bannerSeq
}

// BannerSeq returns the sequence number of the current banner.
func (f *Form) BannerSeq() uint64 {
	return f.bannerSeq
}

// ExpireBanner hides the banner if seq still identifies it.
func (f *Form) ExpireBanner(seq uint64) bool {
	if seq != f.bannerSeq || f.banner == "" {
		return false
	}
	f.banner = ""
	return true
}

// CopyText returns the text the copy control puts on the clipboard.
func (f *Form) CopyText() string {
	return f.output
}

// CopySucceeded shows the "Copied!" feedback and returns the sequence number
// its revert must carry.
func (f *Form) CopySucceeded() uint64 {
	f.copySeq++
	f.copied = true
	return f.copySeq
}

// ExpireCopyFeedback reverts the copy control label if seq is current.
func (f *Form) ExpireCopyFeedback(seq uint64) bool {
	if seq != f.copySeq || !f.copied {
		return false
	}
	f.copied = false
	return true
}

// CopyFailed reports a clipboard failure on the banner.
func (f *Form) CopyFailed() uint64 {
	return f.ShowError(MessageCopyFailed)
}

// TakeFocusRequest reports, once, whether the input should regain focus.
func (f *Form) TakeFocusRequest() bool {
	requested := f.focusInput
	f.focusInput = false
	return requested
}

// TakeScrollRequest reports, once, whether the output should be scrolled
// into view.
func (f *Form) TakeScrollRequest() bool {
	requested := f.scrollOutput
	f.scrollOutput = false
	return requested
}
