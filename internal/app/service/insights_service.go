package service

import (
	"context"
	"log"

	"cf_insights/internal/app/aggregate"
	"cf_insights/internal/app/report"
	"cf_insights/internal/common"
	"cf_insights/internal/domain/repository"

	"github.com/go-playground/validator/v10"
)

// handleRule matches the platform's own handle constraints, checked before
// any network call goes out.
const handleRule = "required,min=3,max=24,printascii,excludesall= /\\"

type InsightsService struct {
	cf       repository.CodeforcesRepository
	reporter *report.Reporter
	validate *validator.Validate
}

func NewInsightsService(cf repository.CodeforcesRepository, reporter *report.Reporter) *InsightsService {
	return &InsightsService{
		cf:       cf,
		reporter: reporter,
		validate: validator.New(),
	}
}

// GenerateReport runs the whole pipeline for one handle: fetch profile
// (hard), rating history and submissions (soft), aggregate, write the
// report artifacts, then fetch the avatar as a best-effort side effect.
// The three fetches run sequentially; nothing is retried.
func (s *InsightsService) GenerateReport(ctx context.Context, handle string) error {
	if err := s.validate.Var(handle, handleRule); err != nil {
		return common.Errorf("handle %q: %v: %w", handle, err, common.ErrBadHandle)
	}

	log.Printf("INFO: fetching profile for %s", handle)
	user, err := s.cf.UserInfo(ctx, handle)
	if err != nil {
		return common.Errorf("fetching profile for %s: %w", handle, err)
	}

	log.Printf("INFO: fetching rating history for %s", handle)
	changes, err := s.cf.UserRating(ctx, handle)
	if err != nil {
		return common.Errorf("fetching rating history for %s: %w", handle, err)
	}

	log.Printf("INFO: fetching submissions for %s", handle)
	submissions, err := s.cf.UserStatus(ctx, handle)
	if err != nil {
		return common.Errorf("fetching submissions for %s: %w", handle, err)
	}

	stats := aggregate.Build(submissions)
	log.Printf("INFO: %s: %d contests, %d submissions, %d problems solved",
		handle, len(changes), len(submissions), stats.SolvedCount())

	if err := s.reporter.Write(user, changes, stats); err != nil {
		return common.Errorf("writing reports for %s: %w", handle, err)
	}

	// The avatar comes last: a download or decode failure must never undo
	// an already-written report set.
	if user.TitlePhoto != "" {
		if data, err := s.cf.DownloadAvatar(ctx, user.TitlePhoto); err != nil {
			log.Printf("WARN: avatar for %s skipped: %v", handle, err)
		} else if err := s.reporter.WriteAvatar(handle, data); err != nil {
			log.Printf("WARN: avatar for %s not written: %v", handle, err)
		}
	}

	log.Printf("INFO: reports for %s written to %s", handle, s.reporter.Dir(handle))
	return nil
}
