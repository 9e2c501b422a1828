package aggregate

import (
	"sort"
	"time"

	"cf_insights/internal/domain/model"
)

// Stats holds everything derived from one user's submission list. All
// tables count accepted submissions only, except Verdicts which counts
// every judged submission by its exact verdict string.
type Stats struct {
	Verdicts  *Counter
	Languages *Counter
	Tags      *Counter
	Ratings   *RatingCounter
	Months    *Counter
	Hours     *HourCounter

	solved map[string]struct{}

	// FirstAccepted and LastAccepted are taken from the first and last
	// accepted submission in the order the API returned them. The API
	// serves newest-first, so that order is preserved rather than assumed
	// chronological. Nil when no submission was accepted.
	FirstAccepted *time.Time
	LastAccepted  *time.Time
}

// Build scans the submission list once and fills every frequency table.
// It never fails: malformed optional fields degrade to sentinel buckets.
func Build(submissions []model.Submission) *Stats {
	stats := &Stats{
		Verdicts:  NewCounter(),
		Languages: NewCounter(),
		Tags:      NewCounter(),
		Ratings:   NewRatingCounter(),
		Months:    NewCounter(),
		Hours:     NewHourCounter(),
		solved:    make(map[string]struct{}),
	}

	for i := range submissions {
		sub := &submissions[i]
		if sub.Verdict == "" {
			// Not judged yet (or skipped); not even a verdict to count.
			continue
		}
		stats.Verdicts.Add(sub.Verdict)

		if !sub.Accepted() {
			continue
		}

		stats.solved[sub.ProblemKey()] = struct{}{}
		stats.Languages.Add(sub.ProgrammingLanguage)
		stats.Ratings.Add(sub.Problem.Rating)
		for _, tag := range sub.Problem.Tags {
			stats.Tags.Add(tag)
		}

		created := time.Unix(sub.CreationTimeSeconds, 0)
		stats.Months.Add(created.Format("2006-01"))
		stats.Hours.Add(created.Hour())

		if stats.FirstAccepted == nil {
			first := created
			stats.FirstAccepted = &first
		}
		last := created
		stats.LastAccepted = &last
	}

	return stats
}

// SolvedCount is the number of distinct problems with at least one
// accepted submission.
func (s *Stats) SolvedCount() int {
	return len(s.solved)
}

// SolvedKeys returns the solved problem keys sorted lexicographically.
func (s *Stats) SolvedKeys() []string {
	keys := make([]string, 0, len(s.solved))
	for key := range s.solved {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
