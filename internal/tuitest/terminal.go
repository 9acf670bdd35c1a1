package tuitest

import (
	"bytes"
	"fmt"
	"io"
)

// Colours reported to OSC 10/11 queries. termenv asks for them when lipgloss
// picks between light and dark styles.
const (
	foregroundRGB = "rgb:cccc/cccc/cccc"
	backgroundRGB = "rgb:0000/0000/0000"
)

type terminalReply struct {
	query []byte
	reply []byte
}

// terminalResponder answers the terminal queries a program writes to the PTY,
// as a real terminal of the configured size would.
type terminalResponder struct {
	w       io.Writer
	buf     []byte
	replies []terminalReply
	// longest query, kept as tail so a query split across reads still matches
	tail int
}

func newTerminalResponder(w io.Writer, width, height int) *terminalResponder {
	replies := []terminalReply{
		// cursor position: the program starts drawing at the home position
		{query: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")},
		// text area size in characters
		{query: []byte("\x1b[18t"), reply: []byte(fmt.Sprintf("\x1b[8;%d;%dt", height, width))},
	}
	for _, osc := range []struct {
		code  int
		color string
	}{{10, foregroundRGB}, {11, backgroundRGB}} {
		for _, st := range []string{"\x07", "\x1b\\"} {
			replies = append(replies, terminalReply{
				query: []byte(fmt.Sprintf("\x1b]%d;?%s", osc.code, st)),
				reply: []byte(fmt.Sprintf("\x1b]%d;%s%s", osc.code, osc.color, st)),
			})
		}
	}
	tail := 0
	for _, r := range replies {
		if len(r.query) > tail {
			tail = len(r.query)
		}
	}
	return &terminalResponder{w: w, buf: make([]byte, 0, 128), replies: replies, tail: tail}
}

// Process scans a chunk of program output and writes any replies, in the
// order the queries appeared.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for {
		idx, match := tr.nextQuery()
		if match == nil {
			break
		}
		tr.buf = tr.buf[idx+len(match.query):]
		_, _ = tr.w.Write(match.reply)
	}
	if keep := tr.tail - 1; len(tr.buf) > keep {
		tr.buf = tr.buf[len(tr.buf)-keep:]
	}
}

func (tr *terminalResponder) nextQuery() (int, *terminalReply) {
	best := -1
	var match *terminalReply
	for i := range tr.replies {
		idx := bytes.Index(tr.buf, tr.replies[i].query)
		if idx >= 0 && (best < 0 || idx < best) {
			best = idx
			match = &tr.replies[i]
		}
	}
	return best, match
}
