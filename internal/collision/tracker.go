package collision

import (
	"github.com/arloliu/wordpack/errs"
)

// Tracker records the channels added to a block set and rejects duplicates.
//
// A block set indexes its blocks by channel ID alone, so two different names that
// hash to the same ID cannot both be stored.
type Tracker struct {
	names   map[uint64]string // ID → name, "" when only the ID is known
	ordered []uint64          // IDs in insertion order
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[uint64]string),
		ordered: make([]uint64, 0),
	}
}

// TrackID tracks a channel that is known only by its ID.
//
// Returns ErrChannelExists if the ID was already tracked.
func (t *Tracker) TrackID(id uint64) error {
	if _, exists := t.names[id]; exists {
		return errs.Detailf(errs.ErrChannelExists, "channel ID %#016x", id)
	}

	t.names[id] = ""
	t.ordered = append(t.ordered, id)

	return nil
}

// TrackChannel tracks a channel name together with its ID.
//
// Returns:
//   - ErrInvalidChannelName if name is empty
//   - ErrChannelExists if the same name was tracked before
//   - ErrHashCollision if a different name already owns the ID
func (t *Tracker) TrackChannel(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidChannelName
	}

	if existing, exists := t.names[id]; exists {
		if existing == name || existing == "" {
			return errs.Detailf(errs.ErrChannelExists, "channel %q", name)
		}

		return errs.Detailf(errs.ErrHashCollision, "channels %q and %q share ID %#016x", existing, name, id)
	}

	t.names[id] = name
	t.ordered = append(t.ordered, id)

	return nil
}

// Name returns the channel name tracked for id, or "" if unknown.
func (t *Tracker) Name(id uint64) string {
	return t.names[id]
}

// IDs returns the tracked IDs in insertion order.
func (t *Tracker) IDs() []uint64 {
	return t.ordered
}

// Count returns the number of tracked channels.
func (t *Tracker) Count() int {
	return len(t.ordered)
}

// Reset clears all tracked channels, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.names)
	t.ordered = t.ordered[:0]
}
