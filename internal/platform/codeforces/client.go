package codeforces

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"cf_insights/internal/common"
	"cf_insights/internal/domain/model"
	"cf_insights/internal/domain/repository"

	_ "image/gif"  // avatar decoding
	_ "image/jpeg" // avatar decoding
)

const statusOK = "OK"

// apiResponse is the envelope every Codeforces API method returns.
type apiResponse struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

type Client struct {
	baseURL         string
	apiKey          string
	apiSecret       string
	submissionCount int
	httpClient      *http.Client
}

// NewClient builds an API client. key and secret may be empty, in which
// case requests go out unsigned (anonymous access sees the same public
// data). The underlying http.Client carries no timeout; a hung call stalls
// the run.
func NewClient(baseURL, key, secret string, submissionCount int) repository.CodeforcesRepository {
	return &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		apiKey:          key,
		apiSecret:       secret,
		submissionCount: submissionCount,
		httpClient:      &http.Client{},
	}
}

func (c *Client) UserInfo(ctx context.Context, handle string) (*model.User, error) {
	params := url.Values{}
	params.Set("handles", handle)

	result, err := c.call(ctx, "user.info", params)
	if err != nil {
		if errors.Is(err, common.ErrAPIFailure) {
			// The profile is a hard dependency: an API-level failure here
			// means the handle does not exist.
			return nil, fmt.Errorf("%v: %w", err, common.ErrUserNotFound)
		}
		return nil, err
	}

	var users []model.User
	if err := json.Unmarshal(result, &users); err != nil {
		return nil, common.Errorf("user.info: decoding result: %w", err)
	}
	if len(users) == 0 {
		return nil, common.ErrUserNotFound
	}
	return &users[0], nil
}

func (c *Client) UserRating(ctx context.Context, handle string) ([]model.RatingChange, error) {
	params := url.Values{}
	params.Set("handle", handle)

	result, err := c.call(ctx, "user.rating", params)
	if err != nil {
		if errors.Is(err, common.ErrAPIFailure) {
			// Soft dependency: a user with no contest history is valid.
			return []model.RatingChange{}, nil
		}
		return nil, err
	}

	var changes []model.RatingChange
	if err := json.Unmarshal(result, &changes); err != nil {
		return nil, common.Errorf("user.rating: decoding result: %w", err)
	}
	return changes, nil
}

func (c *Client) UserStatus(ctx context.Context, handle string) ([]model.Submission, error) {
	params := url.Values{}
	params.Set("handle", handle)
	params.Set("from", "1")
	params.Set("count", strconv.Itoa(c.submissionCount))

	result, err := c.call(ctx, "user.status", params)
	if err != nil {
		if errors.Is(err, common.ErrAPIFailure) {
			return []model.Submission{}, nil
		}
		return nil, err
	}

	var submissions []model.Submission
	if err := json.Unmarshal(result, &submissions); err != nil {
		return nil, common.Errorf("user.status: decoding result: %w", err)
	}
	return submissions, nil
}

// DownloadAvatar fetches the profile picture and normalizes it to PNG.
// Codeforces historically serves scheme-relative photo URLs.
func (c *Client) DownloadAvatar(ctx context.Context, avatarURL string) ([]byte, error) {
	if strings.HasPrefix(avatarURL, "//") {
		avatarURL = "https:" + avatarURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, avatarURL, nil)
	if err != nil {
		return nil, common.Errorf("avatar: building request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.Errorf("avatar: fetching %s: %w", avatarURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.Errorf("avatar: unexpected status %d from %s", resp.StatusCode, avatarURL)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, common.Errorf("avatar: decoding image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, common.Errorf("avatar: encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// call performs one GET against the API and unwraps the response envelope.
// An API-level failure (status != "OK") wraps common.ErrAPIFailure so
// callers can tell it apart from transport and decode errors. There is no
// retry and no backoff.
func (c *Client) call(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	if c.apiKey != "" && c.apiSecret != "" {
		c.sign(method, params)
	}

	endpoint := c.baseURL + "/" + method + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, common.Errorf("%s: building request: %w", method, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.Errorf("%s: request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.Errorf("%s: reading response: %w", method, err)
	}

	// The API reports failures through the envelope (with a 4xx code), so
	// the body is decoded before the status code is considered.
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, common.Errorf("%s: decoding response (http %d): %w", method, resp.StatusCode, err)
	}
	if envelope.Status != statusOK {
		return nil, common.Errorf("%s: %s: %w", method, envelope.Comment, common.ErrAPIFailure)
	}
	return envelope.Result, nil
}

// sign adds apiKey, time and apiSig to params following the published API
// rules: apiSig is a random 6-digit prefix followed by the SHA-512 of
// "<prefix>/<method>?<params sorted by key, then value>#<secret>".
func (c *Client) sign(method string, params url.Values) {
	params.Set("apiKey", c.apiKey)
	params.Set("time", strconv.FormatInt(time.Now().Unix(), 10))

	type pair struct{ key, value string }
	var pairs []pair
	for key, values := range params {
		for _, value := range values {
			pairs = append(pairs, pair{key, value})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(p.value)
	}

	prefix := fmt.Sprintf("%06d", rand.Intn(1000000))
	payload := prefix + "/" + method + "?" + sb.String() + "#" + c.apiSecret
	digest := sha512.Sum512([]byte(payload))
	params.Set("apiSig", prefix+hex.EncodeToString(digest[:]))
}
