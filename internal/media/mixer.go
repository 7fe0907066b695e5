package media

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultVolume is the volume of an empty or freshly cleared slot.
const DefaultVolume = 100

// ErrSlotOutOfRange is returned for a slot index outside the mixer.
var ErrSlotOutOfRange = errors.New("slot out of range")

// Slot is one channel of the equalizer.
type Slot struct {
	ID     int    `json:"id"`
	Video  *Video `json:"video"`
	Volume int    `json:"volume"`
}

// Mixer plays up to len(slots) videos side by side, each at its own volume.
// It is not safe for concurrent use.
type Mixer struct {
	slots []Slot
}

// NewMixer returns a mixer with n empty slots at DefaultVolume.
//
// Precondition: n > 0.
func NewMixer(n int) *Mixer {
	m := &Mixer{slots: make([]Slot, n)}
	for i := range m.slots {
		m.slots[i] = Slot{ID: i, Volume: DefaultVolume}
	}
	return m
}

// Slots returns a copy of every slot.
func (m *Mixer) Slots() []Slot { return slices.Clone(m.slots) }

func (m *Mixer) slot(i int) (*Slot, error) {
	if i < 0 || i >= len(m.slots) {
		return nil, fmt.Errorf("slot %d of %d: %w", i, len(m.slots), ErrSlotOutOfRange)
	}
	return &m.slots[i], nil
}

// Assign places v in slot i, replacing whatever was there. The slot volume is kept.
func (m *Mixer) Assign(i int, v Video) error {
	s, err := m.slot(i)
	if err != nil {
		return err
	}
	s.Video = &v
	return nil
}

// Clear empties slot i and restores DefaultVolume.
func (m *Mixer) Clear(i int) error {
	s, err := m.slot(i)
	if err != nil {
		return err
	}
	s.Video = nil
	s.Volume = DefaultVolume
	return nil
}

// SetVolume sets slot i's volume, clamped to [0, 100].
func (m *Mixer) SetVolume(i, volume int) error {
	s, err := m.slot(i)
	if err != nil {
		return err
	}
	s.Volume = min(max(volume, 0), 100)
	return nil
}

// RemoveVideo clears every slot playing videoID and returns how many were cleared.
func (m *Mixer) RemoveVideo(videoID string) int {
	n := 0
	for i := range m.slots {
		if m.slots[i].Video != nil && m.slots[i].Video.ID == videoID {
			m.slots[i].Video = nil
			m.slots[i].Volume = DefaultVolume
			n++
		}
	}
	return n
}

// Contains reports whether any slot plays videoID.
func (m *Mixer) Contains(videoID string) bool {
	return slices.ContainsFunc(m.slots, func(s Slot) bool {
		return s.Video != nil && s.Video.ID == videoID
	})
}

// FirstEmpty returns the lowest empty slot index, or false when all are taken.
func (m *Mixer) FirstEmpty() (int, bool) {
	i := slices.IndexFunc(m.slots, func(s Slot) bool { return s.Video == nil })
	return i, i >= 0
}
