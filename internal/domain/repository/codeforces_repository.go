package repository

import (
	"context"

	"cf_insights/internal/domain/model"
)

// CodeforcesRepository is the read-only view of the Codeforces API the
// application consumes. Implementations live under internal/platform.
type CodeforcesRepository interface {
	// UserInfo fetches the profile for one handle. A handle unknown to the
	// API yields common.ErrUserNotFound.
	UserInfo(ctx context.Context, handle string) (*model.User, error)

	// UserRating fetches the contest rating history in chronological order.
	// An API-level failure (e.g. user never competed) yields an empty slice,
	// not an error.
	UserRating(ctx context.Context, handle string) ([]model.RatingChange, error)

	// UserStatus fetches the most recent submissions, newest first, in the
	// order the API returns them. API-level failures yield an empty slice.
	UserStatus(ctx context.Context, handle string) ([]model.Submission, error)

	// DownloadAvatar fetches and decodes the profile picture, returning it
	// re-encoded as PNG bytes.
	DownloadAvatar(ctx context.Context, url string) ([]byte, error)
}
