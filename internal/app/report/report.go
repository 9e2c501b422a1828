package report

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cf_insights/internal/app/aggregate"
	"cf_insights/internal/domain/model"
)

// recentContestWindow bounds the "recent" contest views: contests.txt and
// rating_graph.txt cover at most this many of the latest entries.
const recentContestWindow = 50

// graphWidth is the maximum bar length in rating_graph.txt.
const graphWidth = 50

const (
	FileSummary           = "insights.txt"
	FileContests          = "contests.txt"
	FileProblems          = "problems.txt"
	FileLanguages         = "languages.txt"
	FileTags              = "tags.txt"
	FileRatingGraph       = "rating_graph.txt"
	FileProblemsPerRating = "problems_per_rating.txt"
	FileAvatar            = "avatar.png"
)

const notAvailable = "N/A"

// Reporter renders aggregated statistics into flat-text artifacts inside a
// per-handle directory under outputDir. Writes are plain overwrites; a
// re-run over unchanged data reproduces every file byte for byte.
type Reporter struct {
	outputDir string
}

func NewReporter(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// Dir is the per-handle output directory path.
func (r *Reporter) Dir(handle string) string {
	return filepath.Join(r.outputDir, "insights-"+handle)
}

// Write renders and writes every report artifact. Each artifact is written
// independently; one failed write is logged and does not suppress the
// others.
func (r *Reporter) Write(user *model.User, changes []model.RatingChange, stats *aggregate.Stats) error {
	dir := r.Dir(user.Handle)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	artifacts := []struct {
		name    string
		content string
	}{
		{FileSummary, RenderSummary(user, changes, stats)},
		{FileContests, RenderContests(changes)},
		{FileProblems, RenderProblems(stats)},
		{FileLanguages, RenderTable(stats.Languages.ByCountDesc())},
		{FileTags, RenderTable(stats.Tags.ByCountDesc())},
		{FileRatingGraph, RenderRatingGraph(changes)},
		{FileProblemsPerRating, RenderTable(stats.Ratings.Ascending())},
	}

	var errs []error
	for _, artifact := range artifacts {
		path := filepath.Join(dir, artifact.name)
		if err := os.WriteFile(path, []byte(artifact.content), 0o644); err != nil {
			log.Printf("ERROR: writing %s: %v", path, err)
			errs = append(errs, fmt.Errorf("%s: %w", artifact.name, err))
		}
	}
	return errors.Join(errs...)
}

// WriteAvatar stores the already-decoded avatar bytes next to the reports.
func (r *Reporter) WriteAvatar(handle string, data []byte) error {
	return os.WriteFile(filepath.Join(r.Dir(handle), FileAvatar), data, 0o644)
}

// RenderSummary builds insights.txt: the profile block, aggregate counts
// and every frequency table in its defined order.
func RenderSummary(user *model.User, changes []model.RatingChange, stats *aggregate.Stats) string {
	var sb strings.Builder

	sb.WriteString("Codeforces Insights: " + user.Handle + "\n")
	sb.WriteString(strings.Repeat("=", len("Codeforces Insights: ")+len(user.Handle)) + "\n\n")

	sb.WriteString("Name: " + orNA(user.FullName()) + "\n")
	sb.WriteString("Country: " + orNA(user.Country) + "\n")
	sb.WriteString("Organization: " + orNA(user.Organization) + "\n")
	sb.WriteString(fmt.Sprintf("Contribution: %d\n", user.Contribution))
	sb.WriteString(fmt.Sprintf("Friend Of: %d\n", user.FriendOfCount))
	sb.WriteString("Registered: " + time.Unix(user.RegistrationTimeSeconds, 0).Format("2006-01-02") + "\n")
	sb.WriteString("Rating: " + ratingOrUnrated(user.Rating) + "\n")
	sb.WriteString("Rank: " + rankOrUnranked(user.Rank) + "\n")
	sb.WriteString("Max Rating: " + ratingOrUnrated(user.MaxRating) + "\n")
	sb.WriteString("Max Rank: " + rankOrUnranked(user.MaxRank) + "\n")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Contests: %d\n", len(changes)))
	sb.WriteString(fmt.Sprintf("Problems Solved: %d\n", stats.SolvedCount()))
	sb.WriteString(fmt.Sprintf("Languages Used: %d\n", stats.Languages.Len()))
	sb.WriteString(fmt.Sprintf("Distinct Tags: %d\n", stats.Tags.Len()))
	sb.WriteString("First Problem Solved: " + timeOrNA(stats.FirstAccepted) + "\n")
	sb.WriteString("Last Problem Solved: " + timeOrNA(stats.LastAccepted) + "\n")

	sections := []struct {
		title   string
		entries []aggregate.Entry
	}{
		{"Verdicts", stats.Verdicts.ByCountDesc()},
		{"Languages", stats.Languages.ByCountDesc()},
		{"Tags", stats.Tags.ByCountDesc()},
		{"Problems per Rating", stats.Ratings.Ascending()},
		{"Solved per Month", stats.Months.ByKeyAsc()},
		{"Solved per Hour", stats.Hours.Ascending()},
	}
	for _, section := range sections {
		sb.WriteString("\n" + section.title + ":\n")
		sb.WriteString(RenderTable(section.entries))
	}

	return sb.String()
}

// RenderContests builds contests.txt: one line per recent contest with the
// resulting rating and the signed delta.
func RenderContests(changes []model.RatingChange) string {
	var sb strings.Builder
	for _, change := range recentWindow(changes) {
		sb.WriteString(fmt.Sprintf("%s | %d | %+d\n", change.ContestName, change.NewRating, change.Delta()))
	}
	return sb.String()
}

// RenderProblems builds problems.txt: the sorted solved keys, one per
// line. An empty solved set yields an empty file.
func RenderProblems(stats *aggregate.Stats) string {
	return strings.Join(stats.SolvedKeys(), "\n")
}

// RenderTable renders a frequency table as "key: count" lines.
func RenderTable(entries []aggregate.Entry) string {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("%s: %d\n", entry.Key, entry.Count))
	}
	return sb.String()
}

// RenderRatingGraph builds rating_graph.txt: a horizontal bar per recent
// contest, scaled into the window [min(0, ratings), max(0, ratings)].
func RenderRatingGraph(changes []model.RatingChange) string {
	window := recentWindow(changes)
	if len(window) == 0 {
		return ""
	}

	// The window always includes 0 so a flat history still gets a
	// meaningful scale.
	lowest, highest := 0, 0
	for _, change := range window {
		if change.NewRating < lowest {
			lowest = change.NewRating
		}
		if change.NewRating > highest {
			highest = change.NewRating
		}
	}
	span := highest - lowest
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	for _, change := range window {
		length := int(math.Round(graphWidth * float64(change.NewRating-lowest) / float64(span)))
		sb.WriteString(fmt.Sprintf("%4d | %s\n", change.NewRating, strings.Repeat("#", length)))
	}
	return sb.String()
}

func recentWindow(changes []model.RatingChange) []model.RatingChange {
	if len(changes) > recentContestWindow {
		return changes[len(changes)-recentContestWindow:]
	}
	return changes
}

func orNA(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}

func ratingOrUnrated(rating *int) string {
	if rating == nil {
		return "Unrated"
	}
	return fmt.Sprintf("%d", *rating)
}

func rankOrUnranked(rank string) string {
	if rank == "" {
		return "Unranked"
	}
	return rank
}

func timeOrNA(t *time.Time) string {
	if t == nil {
		return notAvailable
	}
	return t.Format("2006-01-02 15:04:05")
}
