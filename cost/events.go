package cost

// Event is a contiguous run of timesteps sharing one positive label
// in an event-segmentation mask.
type Event struct {
	Label      int
	Start, End int // inclusive index range
}

// SegmentEvents extracts flood events from a segmentation mask:
// every maximal contiguous run of a single positive label becomes one
// event; zero or negative labels separate events.
func SegmentEvents(mask []int) []Event {
	var evs []Event
	for i := 0; i < len(mask); {
		if mask[i] <= 0 {
			i++
			continue
		}
		j := i
		for j+1 < len(mask) && mask[j+1] == mask[i] {
			j++
		}
		evs = append(evs, Event{Label: mask[i], Start: i, End: j})
		i = j + 1
	}
	return evs
}
