package form

import (
	"strconv"
	"unicode/utf8"
)

// View is everything the UI needs to draw the form. It is derived from the
// controller state in one place so visibility never drifts.
type View struct {
	State          State
	InputCount     string
	SubmitEnabled  bool
	SpinnerVisible bool
	OutputVisible  bool
	CopyVisible    bool
	CopyLabel      string
	Output         string
	OutputCount    string
	Summary        string
	BannerVisible  bool
	Banner         string
}

// Render computes the current View.
func (f *Form) Render() View {
	loading := f.state == StateLoading
	hasOutput := f.result != nil
	v := View{
		State:          f.state,
		InputCount:     formatCount(f.UpdateCharCount()),
		SubmitEnabled:  !loading && f.UpdateCharCount() > 0,
		SpinnerVisible: loading,
		OutputVisible:  hasOutput,
		CopyVisible:    hasOutput,
		CopyLabel:      copyLabel,
		BannerVisible:  f.banner != "",
		Banner:         f.banner,
	}
	if f.copied {
		v.CopyLabel = copiedLabel
	}
	if hasOutput {
		v.Output = f.output
		v.OutputCount = formatCount(utf8.RuneCountInString(f.output))
		v.Summary = f.summary
	}
	return v
}

func formatCount(n int) string {
	return strconv.Itoa(n) + charCountSuffix
}
