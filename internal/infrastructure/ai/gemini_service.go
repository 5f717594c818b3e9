package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain"
)

// Verificar en tiempo de compilación que GeminiService implementa AnalysisProvider.
var _ ports.AnalysisProvider = (*GeminiService)(nil)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiService adaptador de AnalysisProvider sobre la API REST de Google Gemini.
// Pide responseMimeType=application/json con un responseSchema, así la respuesta llega como
// JSON puro; igual se limpia de bloques Markdown por si acaso.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiDefaultBaseURL,
		httpClient: newHTTPClient(),
	}
}

// WithBaseURL apunta el adaptador a otro host (tests con httptest).
func (s *GeminiService) WithBaseURL(baseURL string) *GeminiService {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	Temperature      float32        `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// AnalyzeStock pide al modelo el resumen y las requisiciones sugeridas.
func (s *GeminiService) AnalyzeStock(ctx context.Context, req ports.AnalysisRequest) (json.RawMessage, error) {
	prompt, err := analyzeStockPrompt(req)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, prompt, analysisSchema, 0.2)
}

// GenerateInventory pide al modelo un catálogo ficticio de proveedores y productos.
func (s *GeminiService) GenerateInventory(ctx context.Context) (json.RawMessage, error) {
	return s.generate(ctx, generateInventoryPrompt, inventorySchema, 0.7)
}

func (s *GeminiService) generate(ctx context.Context, prompt string, schema map[string]any, temperature float32) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado: %w", domain.ErrProviderNotConfigured)
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
			Temperature:      temperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.baseURL, url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	raw, err := send(ctx, s.httpClient, httpReq, "Gemini", func(b []byte) string {
		var errResp geminiResponse
		if json.Unmarshal(b, &errResp) == nil && errResp.Error != nil {
			return errResp.Error.Message
		}
		return ""
	})
	if err != nil {
		return nil, err
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(raw, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %v: %w", err, domain.ErrProviderFailure)
	}

	var text strings.Builder
	if len(gemResp.Candidates) > 0 {
		for _, part := range gemResp.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
	}
	return json.RawMessage(cleanJSON(text.String())), nil
}
