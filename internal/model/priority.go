package model

import "fmt"

// Priority ordinals as used on the wire. The gaps are the backend's own
// numbering, not ours.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 3
	PriorityHigh   = 5
)

var priorityByName = map[string]int{
	"none":   PriorityNone,
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
}

var priorityByValue = map[int]string{
	PriorityNone:   "none",
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

// ParsePriority maps a priority name to its wire ordinal.
func ParsePriority(name string) (int, error) {
	v, ok := priorityByName[name]
	if !ok {
		return 0, fmt.Errorf("invalid priority %q (expected none, low, medium or high)", name)
	}
	return v, nil
}

// PriorityName maps a wire ordinal back to its name. ok is false for
// ordinals outside the four defined values.
func PriorityName(value int) (string, bool) {
	name, ok := priorityByValue[value]
	return name, ok
}
