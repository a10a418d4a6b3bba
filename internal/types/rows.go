// Package types provides the row and candidate types shared across the job board finder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// InputRow is one (company, application URL) pair read from the input table.
type InputRow struct {
	Company  string `json:"companyName"`
	ApplyURL string `json:"applyUrl"`
}

// Candidate is a job board URL found for a known vendor.
type Candidate struct {
	Vendor string `json:"vendor"`
	URL    string `json:"url"`
}

// Note values recorded in the detailed output layout.
const (
	NoteNone                     = ""
	NoteNoApplyURL               = "no_apply_url"
	NoteDirectMatch              = "direct_match"
	NoteFetchError               = "fetch_error"
	NoteNoMatchInHTML            = "no_match_in_html"
	NoteCandidateSelectionFailed = "candidate_selection_failed"
	NoteHTMLMatch                = "html_match"
)

// UpdateEmailPDF is the update recorded when a page asks applicants to email PDFs.
const UpdateEmailPDF = "email to apply with pdfs"

// OutputRow is the result recorded for a single input row.
// Vendor and BoardURL are either both set or both empty.
type OutputRow struct {
	Company   string `json:"companyName"`
	SourceURL string `json:"source_applyUrl"`
	Vendor    string `json:"job_board_vendor"`
	BoardURL  string `json:"job_board_url"`
	Note      string `json:"notes"`
	Update    string `json:"update"`
}

// Matched reports whether a job board was found for the row.
func (r OutputRow) Matched() bool {
	return r.Vendor != "" && r.BoardURL != ""
}

// Summary describes a completed run.
type Summary struct {
	RunID       string         `json:"run_id"`
	RowsRead    int            `json:"rows_read"`
	RowsWritten int            `json:"rows_written"`
	RowsSkipped int            `json:"rows_skipped"`
	Matched     int            `json:"matched"`
	Notes       map[string]int `json:"notes"`
	Vendors     map[string]int `json:"vendors"`
	Updates     map[string]int `json:"updates"`
	DurationMS  int64          `json:"duration_ms"`
}

// NewSummary returns an empty summary for runID.
func NewSummary(runID string) *Summary {
	return &Summary{
		RunID:   runID,
		Notes:   make(map[string]int),
		Vendors: make(map[string]int),
		Updates: make(map[string]int),
	}
}

// Record counts an emitted row.
func (s *Summary) Record(row OutputRow) {
	s.RowsWritten++
	if row.Note != NoteNone {
		s.Notes[row.Note]++
	}
	if row.Update != "" {
		s.Updates[row.Update]++
	}
	if row.Matched() {
		s.Matched++
		s.Vendors[row.Vendor]++
	}
}
