// Package input decodes terminal key and mouse bytes and hands the resulting
// controls to the simulation through a goroutine-safe Latch.
package input

import (
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, never releases.
const keyHoldDuration = 30 * time.Millisecond

// Keys is the decoded input of one frame.
type Keys struct {
	Left    bool // Held: A, J or left arrow
	Right   bool // Held: D, L or right arrow
	Shoot   bool // Held: space, or a mouse button down
	Restart bool // R or Enter seen since the last read
	Quit    bool // Q or Ctrl-C seen since the last read
	Mouse   bool // A mouse report arrived since the last read
	MouseX  int  // 0-based column of the latest mouse report
	Pressed []byte
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left      time.Time
	right     time.Time
	shoot     time.Time
	mouseDown bool
}

// maxPending bounds an unfinished escape sequence carried to the next read.
const maxPending = 32

// Stream delivers input bytes via a channel and tracks key state between reads.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Escape sequence split across reads
}

// StartStream spawns a goroutine that reads from r until it fails.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
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

// Read drains all available bytes without blocking and decodes them.
// A closed stream reports Quit.
func (s *Stream) Read() Keys {
	var buf []byte
	closed := false
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys := s.decode(buf, time.Now())
	if closed {
		keys.Quit = true
	}
	return keys
}

// decode applies buf to the key state and builds the frame's Keys. An escape
// sequence cut off at the end of buf is kept and decoded with the next read.
func (s *Stream) decode(buf []byte, now time.Time) Keys {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}
	keys := Keys{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && s.holdPartial(buf[i:]) {
			keys.Pressed = buf[:i]
			break
		}

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			case '<':
				if n := s.decodeMouse(buf[i+3:], &keys); n > 0 {
					i += 2 + n
					continue
				}
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			keys.Quit = true
		case 'a', 'A', 'j', 'J':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case ' ':
			s.state.shoot = now
		case 'r', 'R', '\n', '\r':
			keys.Restart = true
		}
	}

	keys.Left = now.Sub(s.state.left) < keyHoldDuration
	keys.Right = now.Sub(s.state.right) < keyHoldDuration
	keys.Shoot = now.Sub(s.state.shoot) < keyHoldDuration || s.state.mouseDown
	return keys
}

// holdPartial keeps seq, which starts with ESC, for the next read when it is
// the unfinished start of an arrow key or mouse report.
func (s *Stream) holdPartial(seq []byte) bool {
	partial := len(seq) == 1 ||
		len(seq) == 2 && seq[1] == '[' ||
		len(seq) >= 3 && seq[1] == '[' && seq[2] == '<' && mouseBodyLen(seq[3:]) < 0
	if !partial || len(seq) > maxPending {
		return false
	}
	s.pending = append([]byte(nil), seq...)
	return true
}

// mouseBodyLen returns the length of the SGR mouse report body "b;x;yM" at the
// start of buf, 0 when it is malformed, or -1 when it is cut off.
func mouseBodyLen(buf []byte) int {
	field := 0
	for i, b := range buf {
		switch {
		case b >= '0' && b <= '9':
		case b == ';' && field < 2:
			field++
		case (b == 'M' || b == 'm') && field == 2:
			return i + 1
		default:
			return 0
		}
	}
	return -1
}

// decodeMouse parses the body of an SGR mouse report (the "<" is already
// consumed) and returns how many bytes it used, or 0 when there is none.
func (s *Stream) decodeMouse(buf []byte, keys *Keys) int {
	n := mouseBodyLen(buf)
	if n <= 0 {
		return 0
	}
	var fields [3]int
	field := 0
	for _, b := range buf[:n-1] {
		if b == ';' {
			field++
			continue
		}
		fields[field] = fields[field]*10 + int(b-'0')
	}
	button, x := fields[0], fields[1]
	keys.Mouse = true
	keys.MouseX = max(x-1, 0)
	// Bit 5 marks motion; low bits 0-2 are buttons, 3 is "none"
	if button&32 == 0 && button&3 != 3 {
		s.state.mouseDown = buf[n-1] == 'M'
	}
	return n
}

// Mouse tracking sequences for terminals that support SGR reports.
const (
	EnableMouse  = "\033[?1003h\033[?1006h"
	DisableMouse = "\033[?1003l\033[?1006l"
)
