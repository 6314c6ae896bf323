package appointments

import (
	"fmt"
	"time"
)

const slotLayout = "15:04"

// ParseSlotTime parses an HH:MM label into a clock time anchored to a fixed
// reference day, so labels compare and add cleanly.
func ParseSlotTime(s string) (time.Time, error) {
	t, err := time.Parse(slotLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t, nil
}

// GenerateSlots produces the candidate slot labels for a working window:
// startTime, startTime+interval, ... while strictly before endTime. A trailing
// partial slot is dropped. The sequence is strictly increasing and
// duplicate-free; it is recomputed fully on each call.
func GenerateSlots(startTime, endTime string, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("interval must be a positive number of minutes")
	}
	start, err := ParseSlotTime(startTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseSlotTime(endTime)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start time must be before end time")
	}

	var slots []string
	for t := start; t.Before(end); t = t.Add(time.Duration(intervalMinutes) * time.Minute) {
		slots = append(slots, t.Format(slotLayout))
	}
	return slots, nil
}

// AvailableSlots subtracts booked labels from the candidate sequence,
// preserving order.
func AvailableSlots(candidates []string, booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}
	var free []string
	for _, s := range candidates {
		if !taken[s] {
			free = append(free, s)
		}
	}
	return free
}
