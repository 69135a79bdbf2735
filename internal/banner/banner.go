package banner

// SlotCount is the fixed number of slots in each banner strip.
const SlotCount = 3

const DefaultImage = "https://placehold.co/1200x400.png"

// Slots is one banner strip. A nil entry renders as an upload placeholder.
type Slots []*string

func Default() Slots {
	s := make(Slots, SlotCount)
	for i := range s {
		img := DefaultImage
		s[i] = &img
	}
	return s
}

func (s Slots) Clone() Slots {
	if s == nil {
		return nil
	}
	out := make(Slots, len(s))
	for i, img := range s {
		if img != nil {
			v := *img
			out[i] = &v
		}
	}
	return out
}

// Set returns a copy with slot index replaced; nil clears it. The second
// result is false when index is outside the strip and nothing changed.
func (s Slots) Set(index int, image *string) (Slots, bool) {
	if index < 0 || index >= len(s) {
		return s.Clone(), false
	}
	out := s.Clone()
	if image != nil {
		v := *image
		out[index] = &v
	} else {
		out[index] = nil
	}
	return out, true
}

// Normalize pads or truncates a decoded strip to SlotCount.
func (s Slots) Normalize() Slots {
	out := make(Slots, SlotCount)
	copy(out, s.Clone())
	return out
}
