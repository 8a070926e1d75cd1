// Package window implements the history window and token header primitives
// shared by the pattern encoder and decoder.
//
// The window holds up to strength+1 previously seen words. Each new word is
// matched against the window by comparing high-order bytes: the entry that
// shares the longest run of leading bytes leaves the shortest residual
// (word XOR entry), so only the residual's low bytes need to be stored.
//
// The window is not safe for concurrent use.
package window

import (
	"math/bits"

	"github.com/arloliu/wordpack/format"
)

const (
	// WordSize is the width of a word in bytes.
	WordSize = 4
	// MaxStrength is the largest supported compression strength.
	MaxStrength = 31
	// MaxEntries is the capacity of a window built with MaxStrength.
	MaxEntries = MaxStrength + 1
)

// Window is a bounded history of recently seen words.
//
// Entries are addressed in one of two ways:
//   - AddressingCircular: slots of a ring whose write cursor starts at slot 0
//     and wraps around, so a slot keeps its number until it is overwritten.
//   - AddressingLinear: positions ordered oldest to newest from index 0; when
//     the window is full, index 0 is evicted and every entry shifts down.
//
// The zero value is not usable; create windows with New.
type Window struct {
	entries  [MaxEntries]uint32
	capacity int
	filled   int
	next     int // ring write cursor, circular mode only
	mode     format.AddressingMode
}

// New creates an empty window for the given strength and addressing mode.
//
// The caller is responsible for validating the arguments; strength is clamped
// to MaxStrength and an unknown mode falls back to circular addressing.
func New(strength uint8, mode format.AddressingMode) Window {
	if strength > MaxStrength {
		strength = MaxStrength
	}
	if !mode.Valid() {
		mode = format.AddressingCircular
	}

	return Window{
		capacity: int(strength) + 1,
		mode:     mode,
	}
}

// Reset empties the window, keeping its strength and addressing mode.
func (w *Window) Reset() {
	w.filled = 0
	w.next = 0
}

// Len returns the number of words currently held.
func (w *Window) Len() int {
	return w.filled
}

// Cap returns the maximum number of words the window holds.
func (w *Window) Cap() int {
	return w.capacity
}

// Mode returns the addressing mode.
func (w *Window) Mode() format.AddressingMode {
	return w.mode
}

// At returns the word addressed by slot.
//
// ok is false when slot does not name a filled entry; a decoder must treat
// that as a corrupt back-reference.
func (w *Window) At(slot int) (word uint32, ok bool) {
	if slot < 0 || slot >= w.filled {
		return 0, false
	}

	return w.entries[slot], true
}

// Match finds the entry that leaves the shortest residual for word.
//
// Entries are visited from the most recent to the oldest and a candidate only
// replaces the current best when its residual is strictly shorter, so equal
// matches resolve to the most recent entry. The search stops early on an
// exact match.
//
// Returns the slot of the chosen entry and the residual length in bytes
// (0 for an exact match, WordSize when no high-order byte matches).
// When the window is empty, slot is -1 and residualLen is WordSize.
func (w *Window) Match(word uint32) (slot int, residualLen int) {
	slot, residualLen = -1, WordSize
	if w.filled == 0 {
		return slot, residualLen
	}

	for i := 0; i < w.filled; i++ {
		s := w.recent(i)
		n := ResidualLen(word ^ w.entries[s])
		if slot < 0 || n < residualLen {
			slot, residualLen = s, n
			if n == 0 {
				break
			}
		}
	}

	return slot, residualLen
}

// Insert adds word as the most recent entry, evicting the oldest entry when
// the window is full.
func (w *Window) Insert(word uint32) {
	if w.mode == format.AddressingLinear {
		if w.filled < w.capacity {
			w.entries[w.filled] = word
			w.filled++

			return
		}

		copy(w.entries[:w.capacity-1], w.entries[1:w.capacity])
		w.entries[w.capacity-1] = word

		return
	}

	w.entries[w.next] = word
	w.next++
	if w.next == w.capacity {
		w.next = 0
	}
	if w.filled < w.capacity {
		w.filled++
	}
}

// recent returns the slot of the i-th most recent entry (0 = newest).
func (w *Window) recent(i int) int {
	if w.mode == format.AddressingLinear {
		return w.filled - 1 - i
	}

	s := w.next - 1 - i
	if s < 0 {
		s += w.capacity
	}

	return s
}

// ResidualLen returns the number of low-order bytes needed to store x.
func ResidualLen(x uint32) int {
	return (bits.Len32(x) + 7) >> 3
}
