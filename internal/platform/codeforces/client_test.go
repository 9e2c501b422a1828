package codeforces

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"cf_insights/internal/common"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "", "", 10000).(*Client)
}

func TestUserInfoOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("handles"); got != "tourist" {
			t.Errorf("handles param = %q, want %q", got, "tourist")
		}
		w.Write([]byte(`{"status":"OK","result":[{"handle":"tourist","rating":3858,"rank":"legendary grandmaster","registrationTimeSeconds":1265987288}]}`))
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).UserInfo(context.Background(), "tourist")
	if err != nil {
		t.Fatalf("UserInfo: %v", err)
	}
	if user.Handle != "tourist" {
		t.Errorf("handle = %q, want tourist", user.Handle)
	}
	if user.Rating == nil || *user.Rating != 3858 {
		t.Errorf("rating = %v, want 3858", user.Rating)
	}
	if user.MaxRating != nil {
		t.Errorf("maxRating = %v, want nil for absent field", user.MaxRating)
	}
}

func TestUserInfoNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"FAILED","comment":"handles: User with handle nobody not found"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).UserInfo(context.Background(), "nobody")
	if !errors.Is(err, common.ErrUserNotFound) {
		t.Errorf("UserInfo error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRatingSoftFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"FAILED","comment":"handle: no rating changes"}`))
	}))
	defer server.Close()

	changes, err := newTestClient(server.URL).UserRating(context.Background(), "newcomer")
	if err != nil {
		t.Fatalf("soft failure must not error, got %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("changes = %v, want empty", changes)
	}
}

func TestUserStatusSoftFailureAndParams(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"status":"FAILED","comment":"nope"}`))
	}))
	defer server.Close()

	submissions, err := newTestClient(server.URL).UserStatus(context.Background(), "newcomer")
	if err != nil {
		t.Fatalf("soft failure must not error, got %v", err)
	}
	if len(submissions) != 0 {
		t.Errorf("submissions = %v, want empty", submissions)
	}
	if got := query["from"]; len(got) != 1 || got[0] != "1" {
		t.Errorf("from param = %v, want [1]", got)
	}
	if got := query["count"]; len(got) != 1 || got[0] != "10000" {
		t.Errorf("count param = %v, want [10000]", got)
	}
}

func TestUserStatusDecodesSubmissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","result":[
			{"id":1,"verdict":"OK","problem":{"contestId":4,"index":"A","rating":800,"tags":["greedy"]},"programmingLanguage":"C++17","creationTimeSeconds":1600000000},
			{"id":2,"problem":{"contestId":4,"index":"B","tags":[]},"programmingLanguage":"Go","creationTimeSeconds":1600000100}
		]}`))
	}))
	defer server.Close()

	submissions, err := newTestClient(server.URL).UserStatus(context.Background(), "solver")
	if err != nil {
		t.Fatalf("UserStatus: %v", err)
	}
	if len(submissions) != 2 {
		t.Fatalf("got %d submissions, want 2", len(submissions))
	}
	if key := submissions[0].ProblemKey(); key != "4A" {
		t.Errorf("problem key = %q, want 4A", key)
	}
	if submissions[1].Verdict != "" {
		t.Errorf("absent verdict decoded as %q, want empty", submissions[1].Verdict)
	}
	if submissions[0].Problem.Rating == nil || *submissions[0].Problem.Rating != 800 {
		t.Errorf("problem rating = %v, want 800", submissions[0].Problem.Rating)
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestClient(server.URL).UserRating(context.Background(), "anyone")
	if err == nil {
		t.Fatal("transport error must propagate, got nil")
	}
	if errors.Is(err, common.ErrAPIFailure) {
		t.Errorf("transport error misclassified as API failure: %v", err)
	}
}

func TestMalformedBodyIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).UserInfo(context.Background(), "anyone"); err == nil {
		t.Fatal("malformed body must error, got nil")
	}
}

func TestSignedRequestCarriesSignature(t *testing.T) {
	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"status":"OK","result":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", 10000)
	if _, err := client.UserRating(context.Background(), "tourist"); err != nil {
		t.Fatalf("UserRating: %v", err)
	}

	if got := query["apiKey"]; len(got) != 1 || got[0] != "key" {
		t.Errorf("apiKey param = %v, want [key]", got)
	}
	if got := query["time"]; len(got) != 1 || got[0] == "" {
		t.Errorf("time param = %v, want unix timestamp", got)
	}
	sig := query["apiSig"]
	if len(sig) != 1 || len(sig[0]) != 6+128 {
		t.Errorf("apiSig = %v, want 6-digit prefix plus 128 hex characters", sig)
	}
}

func TestDownloadAvatarReencodesToPNG(t *testing.T) {
	var original bytes.Buffer
	if err := png.Encode(&original, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(original.Bytes())
	}))
	defer server.Close()

	data, err := newTestClient(server.URL).DownloadAvatar(context.Background(), server.URL+"/photo")
	if err != nil {
		t.Fatalf("DownloadAvatar: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("result is not valid PNG: %v", err)
	}
}

func TestDownloadAvatarRejectsGarbage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).DownloadAvatar(context.Background(), server.URL); err == nil {
		t.Fatal("garbage body must fail to decode, got nil")
	}
}
