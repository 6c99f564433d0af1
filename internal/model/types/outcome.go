package types

type TargetStatus string

const (
	TargetPatched TargetStatus = "patched"
	TargetSkipped TargetStatus = "skipped"
	TargetFailed  TargetStatus = "failed"
)

// TargetOutcome records what a best-effort stage did to a single target.
type TargetOutcome struct {
	TargetID string       `json:"targetId"`
	Label    string       `json:"label,omitempty"`
	Status   TargetStatus `json:"status"`
	Err      error        `json:"-"`
}

type Outcomes []TargetOutcome

func (o Outcomes) Count(status TargetStatus) int {
	n := 0
	for _, outcome := range o {
		if outcome.Status == status {
			n++
		}
	}
	return n
}

// Of returns the outcome recorded for targetID, if any.
func (o Outcomes) Of(targetID string) (TargetOutcome, bool) {
	for _, outcome := range o {
		if outcome.TargetID == targetID {
			return outcome, true
		}
	}
	return TargetOutcome{}, false
}

// LootOutcome summarizes a loot propagation.
type LootOutcome struct {
	Locations         int `json:"locations"`
	SkippedLocations  int `json:"skippedLocations"`
	Containers        int `json:"containers"`
	SkippedContainers int `json:"skippedContainers"`
}
