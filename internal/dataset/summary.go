package dataset

import (
	"time"

	"sentinel-dca-go/internal/types"
)

// Summary describes the currently loaded dataset. It is what /v1/dataset
// reports and what gets logged after each reload.
type Summary struct {
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	Agencies  int       `json:"agencies"`
	Open      int       `json:"open_cases"`
	Closed    int       `json:"closed_cases"`
	LoadedAt  time.Time `json:"loaded_at"`
	LastError string    `json:"last_error,omitempty"`
}

func Summarize(source string, cases []types.Case, loadedAt time.Time) Summary {
	s := Summary{Source: source, Records: len(cases), LoadedAt: loadedAt}
	agencies := map[string]struct{}{}
	for _, c := range cases {
		if c.DCAID != "" {
			agencies[c.DCAID] = struct{}{}
		}
		switch c.CaseStatus {
		case types.StatusOpen:
			s.Open++
		case types.StatusClosed:
			s.Closed++
		}
	}
	s.Agencies = len(agencies)
	return s
}
