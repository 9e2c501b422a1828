package model

import "strconv"

// VerdictOK is the accepted verdict as reported by the judge. All other
// verdict strings ("WRONG_ANSWER", "TIME_LIMIT_EXCEEDED", ...) are passed
// through untouched; an empty verdict means the submission was not judged.
const VerdictOK = "OK"

// Problem identifies the task a submission was made against. Rating is
// absent for unrated problems.
type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name,omitempty"`
	Rating    *int     `json:"rating,omitempty"`
	Tags      []string `json:"tags"`
}

// Submission is one judged (or pending) attempt from user.status. The API
// returns the most recent submissions first.
type Submission struct {
	ID                  int64   `json:"id"`
	Verdict             string  `json:"verdict,omitempty"`
	Problem             Problem `json:"problem"`
	ProgrammingLanguage string  `json:"programmingLanguage"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
}

// Accepted reports whether the submission passed all tests.
func (s *Submission) Accepted() bool {
	return s.Verdict == VerdictOK
}

// ProblemKey is the composite problem identifier, e.g. contest 4 problem
// "A" becomes "4A". Re-submissions to the same problem share a key.
func (s *Submission) ProblemKey() string {
	return strconv.Itoa(s.Problem.ContestID) + s.Problem.Index
}
