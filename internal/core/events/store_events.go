package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSliceChanged = "store.slice_changed"
	EventTypeHydrated     = "store.hydrated"
)

// SliceChanged is published after a store mutation. Slices names the persisted keys
// that changed; Version increases by one per mutation.
type SliceChanged struct {
	BaseEvent
	Slices  []string `json:"slices"`
	Version uint64   `json:"version"`
}

func NewSliceChanged(version uint64, slices ...string) *SliceChanged {
	return &SliceChanged{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeSliceChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"slices":  slices,
				"version": version,
			},
		},
		Slices:  slices,
		Version: version,
	}
}

// Hydrated is published once the store has loaded its persisted slices. Fallbacks lists
// the slices that were replaced by their defaults.
type Hydrated struct {
	BaseEvent
	Fallbacks []string `json:"fallbacks"`
	Version   uint64   `json:"version"`
}

func NewHydrated(version uint64, fallbacks []string) *Hydrated {
	return &Hydrated{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeHydrated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"fallbacks": fallbacks,
				"version":   version,
			},
		},
		Fallbacks: fallbacks,
		Version:   version,
	}
}

// Touches reports whether the event names the given slice.
func (e *SliceChanged) Touches(slice string) bool {
	for _, s := range e.Slices {
		if s == slice {
			return true
		}
	}
	return false
}
