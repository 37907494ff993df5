// Package input turns raw terminal bytes into key state.
package input

import (
	"bufio"
	"strings"
)

// Key identifiers. All identifiers are lower case.
const (
	KeyW          = "w"
	KeyS          = "s"
	KeyR          = "r"
	KeyQ          = "q"
	KeyArrowUp    = "arrowup"
	KeyArrowDown  = "arrowdown"
	KeyArrowLeft  = "arrowleft"
	KeyArrowRight = "arrowright"
	KeySpace      = "space"
	KeyEnter      = "enter"
	KeyEscape     = "escape"
	KeyCtrlC      = "ctrl+c"
	KeyBackspace  = "backspace"
)

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Incomplete escape sequence held back for one drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (e.g. the session hung up).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadKeys drains all available bytes from the stream (non-blocking)
// and decodes them into key identifiers, in arrival order.
// An escape sequence split across drains is completed on the next call.
func ReadKeys(s *Stream) []string {
	buf := s.pending
	held := len(s.pending) > 0
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	if !held && !s.closed {
		if n := incompleteEscape(buf); n > 0 {
			s.pending = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	return ParseKeys(buf)
}

// incompleteEscape returns the length of a trailing escape sequence prefix
// (ESC or ESC [ / ESC O), or 0.
func incompleteEscape(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && (buf[n-1] == '[' || buf[n-1] == 'O'):
		return 2
	}
	return 0
}

// ParseKeys decodes raw terminal bytes into key identifiers.
// CSI (ESC [) and SS3 (ESC O) sequences are consumed whole; arrows map to
// key names and anything else (function keys, mouse reports) is dropped.
func ParseKeys(buf []byte) []string {
	var keys []string
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			end := sequenceEnd(buf, i+2)
			if end < len(buf) {
				if key, ok := arrowKey(buf[end]); ok {
					keys = append(keys, key)
				}
			}
			i = end
			continue
		}

		if key := byteKey(b); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// sequenceEnd returns the index of the final byte (0x40-0x7e) of an escape
// sequence whose parameters start at from, or len(buf) if it is cut short.
func sequenceEnd(buf []byte, from int) int {
	for j := from; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j
		}
	}
	return len(buf)
}

// arrowKey maps the final byte of an arrow escape sequence.
func arrowKey(b byte) (string, bool) {
	switch b {
	case 'A':
		return KeyArrowUp, true
	case 'B':
		return KeyArrowDown, true
	case 'C':
		return KeyArrowRight, true
	case 'D':
		return KeyArrowLeft, true
	}
	return "", false
}

// byteKey maps a single byte to its key identifier, or "" if it has none.
func byteKey(b byte) string {
	switch b {
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\x1b':
		return KeyEscape
	case '\x03':
		return KeyCtrlC
	case '\b', '\x7f':
		return KeyBackspace
	}
	if b > ' ' && b < 0x7f {
		return strings.ToLower(string(rune(b)))
	}
	return ""
}
