package config

import "unsafe"

// SpeedEntry is one point of a piecewise spindle calibration table.
// A table is an ordered sequence; the order defines the mapping.
//
// Speed and Percent are configured. Offset and Scale are derived for a
// given output resolution by SetupSpeeds and are never read from or written
// to text.
type SpeedEntry struct {
	// Speed is the spindle speed (RPM) of this point.
	Speed uint32

	// Percent is the output duty at Speed, 0-100.
	Percent float32

	// Offset is the output duty at Speed, in 0..maxDuty.
	Offset uint32

	// Scale is the duty change per speed unit up to the next point, 16.16
	// fixed point. The direction follows the next point's Offset.
	Scale uint32
}

// SetupSpeeds fills Offset and Scale of every entry for an output whose
// full duty is maxDuty.
func SetupSpeeds(entries []SpeedEntry, maxDuty uint32) {
	for i := range entries {
		entries[i].Offset = uint32(float64(entries[i].Percent)*float64(maxDuty)/100 + 0.5)
	}
	for i := range entries {
		e := &entries[i]
		e.Scale = 0
		if i+1 == len(entries) {
			continue
		}
		next := entries[i+1]
		if span := uint64(next.Speed - e.Speed); span > 0 {
			e.Scale = uint32((absDiff(next.Offset, e.Offset) << 16) / span)
		}
	}
}

// MapSpeed returns the output duty for speed using a table prepared by
// SetupSpeeds. Speeds below the first entry get its duty, speeds past the
// last entry get the last duty.
func MapSpeed(entries []SpeedEntry, speed uint32) uint32 {
	if len(entries) == 0 {
		return 0
	}
	if speed <= entries[0].Speed {
		return entries[0].Offset
	}
	i := len(entries) - 1
	for i > 0 && entries[i].Speed > speed {
		i--
	}
	e := entries[i]
	if i == len(entries)-1 {
		return e.Offset
	}
	delta := uint32((uint64(speed-e.Speed) * uint64(e.Scale)) >> 16)
	if entries[i+1].Offset < e.Offset {
		return e.Offset - delta
	}
	return e.Offset + delta
}

func absDiff(a, b uint32) uint64 {
	if a > b {
		return uint64(a - b)
	}
	return uint64(b - a)
}

// StringRange is a non-owning view of text. Handlers receive a view of the
// owned string so reporting traversals never copy it.
type StringRange struct {
	s string
}

// NewStringRange returns a view of s. No bytes are copied.
func NewStringRange(s string) StringRange {
	return StringRange{s: s}
}

// String returns the viewed text. The result shares storage with the view.
func (r StringRange) String() string { return r.s }

// Len returns the length of the view in bytes.
func (r StringRange) Len() int { return len(r.s) }

// Same returns true if both views cover the same bytes of the same storage.
// Two empty views are the same.
func (r StringRange) Same(o StringRange) bool {
	if len(r.s) != len(o.s) {
		return false
	}
	if len(r.s) == 0 {
		return true
	}
	return unsafe.StringData(r.s) == unsafe.StringData(o.s)
}
