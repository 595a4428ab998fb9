package scheduling

import (
	"time"

	"meetingroom-backend/internal/domain"
)

// suggestionOffsets are the fixed forward shifts applied to a rejected
// window, earliest first.
var suggestionOffsets = []time.Duration{30 * time.Minute, 60 * time.Minute}

// Suggest proposes alternative windows for a conflicting request by shifting
// the requested window forward, preserving its duration. The candidates are
// advisory only and are not verified free. capacity is the rejected room's
// capacity, carried along for context.
func Suggest(start, end time.Time, capacity int32) *domain.Suggestions {
	windows := make([]domain.TimeWindow, 0, len(suggestionOffsets))
	for _, off := range suggestionOffsets {
		windows = append(windows, domain.TimeWindow{
			Start: start.Add(off),
			End:   end.Add(off),
		})
	}
	return &domain.Suggestions{TimeWindows: windows, Capacity: capacity}
}
