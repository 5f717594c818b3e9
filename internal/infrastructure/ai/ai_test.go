package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/ai"
)

var sampleRequest = ports.AnalysisRequest{
	Products:     []ports.AnalysisProduct{{ID: "p1", Name: "Cable", StockLevel: 2, ReorderPoint: 10, SupplierID: "s1"}},
	Suppliers:    []ports.AnalysisSupplier{{ID: "s1", Name: "Acme"}},
	HealthyCount: 4,
}

func geminiReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
	})
	return string(b)
}

// ── Gemini ───────────────────────────────────────────────────────────────────

func TestGemini_AnalyzeStock_StripsFences(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, geminiReply("```json\n{\"summary\":\"ok\",\"requisitions\":[]}\n```"))
	}))
	defer srv.Close()

	svc := ai.NewGeminiService("k3y", "gemini-2.5-flash").WithBaseURL(srv.URL)
	raw, err := svc.AnalyzeStock(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"ok","requisitions":[]}`, string(raw))

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent?key=k3y", gotPath)
	assert.Contains(t, gotBody, "4 other items are healthy", "el prompt informa cuántos quedaron fuera")
	assert.Contains(t, gotBody, `\"currentStock\":2`)
	assert.Contains(t, gotBody, "responseSchema")
}

func TestGemini_EmptyTextIsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	raw, err := ai.NewGeminiService("k", "m").WithBaseURL(srv.URL).GenerateInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestGemini_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota"}}`)
	}))
	defer srv.Close()

	_, err := ai.NewGeminiService("k", "m").WithBaseURL(srv.URL).AnalyzeStock(context.Background(), sampleRequest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderFailure))
	assert.Contains(t, err.Error(), "quota")
}

func TestGemini_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := ai.NewGeminiService("k", "m").WithBaseURL(srv.URL).AnalyzeStock(ctx, sampleRequest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGemini_NoAPIKey(t *testing.T) {
	_, err := ai.NewGeminiService("", "m").AnalyzeStock(context.Background(), sampleRequest)
	assert.True(t, errors.Is(err, domain.ErrProviderNotConfigured))
}

// ── Anthropic ────────────────────────────────────────────────────────────────

func TestAnthropic_ExtractsJSONFromProse(t *testing.T) {
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		assert.Equal(t, "/v1/messages", r.URL.Path)
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"Aquí está:\n{\"summary\":\"bien\"}\nSaludos"}]}`)
	}))
	defer srv.Close()

	raw, err := ai.NewAnthropicService("sk", "claude").WithBaseURL(srv.URL).AnalyzeStock(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"bien"}`, string(raw))
	assert.Equal(t, "sk", headers.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", headers.Get("anthropic-version"))
}

func TestAnthropic_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	_, err := ai.NewAnthropicService("bad", "claude").WithBaseURL(srv.URL).GenerateInventory(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderFailure))
	assert.True(t, strings.Contains(err.Error(), "authentication_error"))
}

// ── Deshabilitado ────────────────────────────────────────────────────────────

func TestDisabledProvider(t *testing.T) {
	var p ports.AnalysisProvider = ai.DisabledProvider{}
	_, err := p.AnalyzeStock(context.Background(), sampleRequest)
	assert.True(t, errors.Is(err, domain.ErrProviderNotConfigured))
	_, err = p.GenerateInventory(context.Background())
	assert.True(t, errors.Is(err, domain.ErrProviderNotConfigured))
}
