package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mixgen/internal/shared"
	tu "github.com/desertthunder/mixgen/internal/testing"
)

func geminiPayload(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestGeminiService(t *testing.T) {
	t.Run("GenerateText", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			var gotPath, gotKey string
			var gotBody geminiRequest

			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.URL.Query().Get("key")
				json.NewDecoder(r.Body).Decode(&gotBody)
				w.Write([]byte(geminiPayload(`[{"name": "Song"}]`)))
			}))
			defer ts.Close()

			svc := NewGeminiService(GeminiOpts{
				Config:  shared.GeminiConfig{APIKey: "test-key", Model: "gemini-pro"},
				BaseURL: ts.URL,
			})

			text, err := svc.GenerateText(context.Background(), "make a playlist")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if text != `[{"name": "Song"}]` {
				t.Errorf("unexpected candidate text: %q", text)
			}
			if gotPath != "/models/gemini-pro:generateContent" {
				t.Errorf("unexpected path: %s", gotPath)
			}
			if gotKey != "test-key" {
				t.Errorf("expected api key in query, got %q", gotKey)
			}
			if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "make a playlist" {
				t.Errorf("unexpected request body: %+v", gotBody)
			}
		})

		t.Run("Missing API Key", func(t *testing.T) {
			svc := NewGeminiService(GeminiOpts{})

			_, err := svc.GenerateText(context.Background(), "prompt")
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("API Error Status", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error": "quota exceeded"}`))
			}))
			defer ts.Close()

			svc := NewGeminiService(GeminiOpts{
				Config:  shared.GeminiConfig{APIKey: "test-key"},
				BaseURL: ts.URL,
			})

			_, err := svc.GenerateText(context.Background(), "prompt")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "429") {
				t.Errorf("expected status code in error, got %v", err)
			}
		})

		t.Run("Timeout", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(100 * time.Millisecond)
				w.Write([]byte(geminiPayload("too late")))
			}))
			defer ts.Close()

			svc := NewGeminiService(GeminiOpts{
				Config:  shared.GeminiConfig{APIKey: "test-key"},
				BaseURL: ts.URL,
				Timeout: 10 * time.Millisecond,
			})

			_, err := svc.GenerateText(context.Background(), "prompt")
			if !errors.Is(err, shared.ErrTimeout) {
				t.Errorf("expected ErrTimeout, got %v", err)
			}
		})

		t.Run("Transport Error", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

			svc := NewGeminiService(GeminiOpts{
				Config:     shared.GeminiConfig{APIKey: "test-key"},
				HTTPClient: client,
			})

			_, err := svc.GenerateText(context.Background(), "prompt")
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected transport failure, got %v", err)
			}
		})

		t.Run("Body Read Failure", func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}}
			client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}

			svc := NewGeminiService(GeminiOpts{
				Config:     shared.GeminiConfig{APIKey: "test-key"},
				HTTPClient: client,
			})

			_, err := svc.GenerateText(context.Background(), "prompt")
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected body read failure, got %v", err)
			}
		})

		t.Run("No Candidates", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates": []}`))
			}))
			defer ts.Close()

			svc := NewGeminiService(GeminiOpts{
				Config:  shared.GeminiConfig{APIKey: "test-key"},
				BaseURL: ts.URL,
			})

			_, err := svc.GenerateText(context.Background(), "prompt")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("Defaults", func(t *testing.T) {
		svc := NewGeminiService(GeminiOpts{})

		if svc.model != defaultGeminiModel {
			t.Errorf("expected default model, got %s", svc.model)
		}
		if svc.timeout != DefaultGenerateTimeout {
			t.Errorf("expected default timeout, got %s", svc.timeout)
		}
		if svc.Name() != "Gemini" {
			t.Errorf("expected service name 'Gemini', got %s", svc.Name())
		}
	})
}
