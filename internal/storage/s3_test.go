package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
)

// fakeS3 serves path-style GETs for a single bucket and answers NoSuchKey otherwise.
func fakeS3(t *testing.T, objects map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := objects[strings.TrimPrefix(r.URL.Path, "/media/")]
		if r.Method != http.MethodGet || !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestStorage(t *testing.T, endpoint string) FileStorage {
	t.Helper()
	store, err := NewS3Storage(config.S3Config{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		BucketName:      "media",
	}, logger.Nop())
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}
	return store
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	if _, err := NewS3Storage(config.S3Config{Region: "us-east-1"}, logger.Nop()); err == nil {
		t.Fatal("expected error without bucket name")
	}
}

func TestS3Storage_GetObject(t *testing.T) {
	srv := fakeS3(t, map[string]string{"catalog/exercises.json": `[{"id":"0001"}]`})
	store := newTestStorage(t, srv.URL)

	data, err := store.GetObject(context.Background(), "catalog/exercises.json")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	if string(data) != `[{"id":"0001"}]` {
		t.Errorf("body = %q", data)
	}

	if _, err := store.GetObject(context.Background(), "catalog/missing.json"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestS3Storage_PresignedURL(t *testing.T) {
	store := newTestStorage(t, "http://localhost:9000")

	raw, err := store.GeneratePresignedDownloadURL(context.Background(), "media/0001.jpg", 0)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "localhost:9000" || u.Path != "/media/media/0001.jpg" {
		t.Errorf("unexpected presigned url %s", raw)
	}
	if got := u.Query().Get("X-Amz-Expires"); got != "900" {
		t.Errorf("expiry = %s, want default of %v", got, DefaultPresignedURLExpiry)
	}

	raw, err = store.GeneratePresignedDownloadURL(context.Background(), "media/0001.jpg", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if u, _ := url.Parse(raw); u.Query().Get("X-Amz-Expires") != "60" {
		t.Errorf("explicit expiry not applied: %s", raw)
	}
}
