// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/mixgen/internal/models"
)

// MockGenerator is a test double for [gen.Generator]. Each call to
// GenerateText consumes the next queued response or error, so a single
// mock can script a failure followed by a recovery.
type MockGenerator struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
}

func NewMockGenerator(responses []string, errs []error) *MockGenerator {
	return &MockGenerator{responses: responses, errs: errs}
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (m *MockGenerator) Name() string { return "mock" }

// Calls reports how many times GenerateText was invoked.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockService is a test double for [services.MusicService]
type MockService struct {
	SearchFunc func(ctx context.Context, title, artist string) (*models.Track, error)
	CreateFunc func(ctx context.Context, accessToken, name string, trackURIs []string) (*models.RemotePlaylist, error)
}

func (m *MockService) Authenticate(ctx context.Context) error { return nil }

func (m *MockService) SearchTrack(ctx context.Context, title, artist string) (*models.Track, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, title, artist)
	}
	return &models.Track{ID: "mock-id", Title: title, Artist: artist}, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, accessToken, name string, trackURIs []string) (*models.RemotePlaylist, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, accessToken, name, trackURIs)
	}
	return &models.RemotePlaylist{ID: "mock-playlist", Name: name, TrackCount: len(trackURIs)}, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
