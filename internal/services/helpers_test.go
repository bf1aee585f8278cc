package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/elevate-workforce/jobportal/internal/access"
	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/config"
	"github.com/elevate-workforce/jobportal/internal/notify"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func actorFor(t *testing.T, db *gorm.DB, userID uuid.UUID) access.Actor {
	t.Helper()
	actor, err := loadActor(context.Background(), db, userID)
	if err != nil {
		t.Fatalf("load actor: %v", err)
	}
	return actor
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("error kind = %s, want %s (%v)", got, kind, err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = b
	return nil
}

func (f *fakeStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return "", errors.New("no such key")
	}
	return "https://files.example.com/" + key + "?sig=test", nil
}

func (f *fakeStore) Copy(_ context.Context, srcKey, dstKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[srcKey]
	if !ok {
		return errors.New("no such key")
	}
	f.objects[dstKey] = append([]byte(nil), b...)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func upload(name, body string) FileUpload {
	return FileUpload{Filename: name, ContentType: "application/pdf", Size: int64(len(body)), Body: bytes.NewBufferString(body)}
}

type fakeMailer struct {
	sent   []notify.Message
	failAt int
}

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	if m.failAt > 0 && len(m.sent)+1 == m.failAt {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}
