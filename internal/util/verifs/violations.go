package verifs

import "github.com/rs/zerolog"

const (
	SummarySuccess        = "mapbook loaded successfully!"
	SummaryPartialFailure = "some mapbook changes failed validation."
)

type Rejection struct {
	Severity zerolog.Level `json:"severity"`
	Message  string        `json:"message"`
}

type Result struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// Report is the outcome of one validation pass. Summary is one of two fixed strings; Results
// carries the per-check detail.
type Report struct {
	Passed  bool     `json:"passed"`
	Summary string   `json:"summary"`
	Results []Result `json:"results"`
}

// Failed returns the names of the checks that did not pass.
func (r *Report) Failed() []string {
	var names []string
	for _, result := range r.Results {
		if !result.Passed {
			names = append(names, result.Name)
		}
	}
	return names
}
