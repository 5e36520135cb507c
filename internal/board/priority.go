package board

import "fmt"

// Priority is the fixed task priority enumeration. Every task in a finalized
// snapshot carries one of these values; an invalid value supplied during
// drafting is coerced to PriorityNormal at finalization (the session's
// ledger still records the violation, so such a snapshot is never returned).
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// priorityNames maps enum values to their canonical spelling.
var priorityNames = map[Priority]string{
	PriorityLow:      "Low",
	PriorityNormal:   "Normal",
	PriorityHigh:     "High",
	PriorityCritical: "Critical",
}

// PriorityNames returns the allowed spellings in ascending severity order.
func PriorityNames() []string {
	return []string{"Low", "Normal", "High", "Critical"}
}

// ParsePriority converts a spelling into a Priority. It is case-sensitive:
// the enumeration is fixed and "high" is not a member.
func ParsePriority(s string) (Priority, error) {
	for p, name := range priorityNames {
		if name == s {
			return p, nil
		}
	}
	return PriorityNormal, fmt.Errorf("unknown priority %q", s)
}

// String returns the canonical spelling.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}
