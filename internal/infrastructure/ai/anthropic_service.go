package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain"
)

// Verificar en tiempo de compilación que AnthropicService implementa AnalysisProvider.
var _ ports.AnalysisProvider = (*AnthropicService)(nil)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"

	anthropicSystemPrompt = `You are a procurement analyst for an inventory system.
Answer ONLY with a valid JSON object, no Markdown and no text outside the JSON.`
)

// AnthropicService adaptador de AnalysisProvider sobre la Messages API de Anthropic (Claude).
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador. model suele ser "claude-3-5-haiku-20241022".
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    anthropicDefaultBaseURL,
		httpClient: newHTTPClient(),
	}
}

// WithBaseURL apunta el adaptador a otro host (tests con httptest).
func (s *AnthropicService) WithBaseURL(baseURL string) *AnthropicService {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe captura desde el primer '{' hasta el último '}' cuando Claude agrega texto alrededor.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// AnalyzeStock pide a Claude el resumen y las requisiciones sugeridas.
func (s *AnthropicService) AnalyzeStock(ctx context.Context, req ports.AnalysisRequest) (json.RawMessage, error) {
	prompt, err := analyzeStockPrompt(req)
	if err != nil {
		return nil, err
	}
	return s.complete(ctx, prompt)
}

// GenerateInventory pide a Claude un catálogo ficticio de proveedores y productos.
func (s *AnthropicService) GenerateInventory(ctx context.Context) (json.RawMessage, error) {
	return s.complete(ctx, generateInventoryPrompt)
}

func (s *AnthropicService) complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado: %w", domain.ErrProviderNotConfigured)
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: 4096,
		System:    anthropicSystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	httpReq.Header.Set("x-api-key", s.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("content-type", "application/json")

	raw, err := send(ctx, s.httpClient, httpReq, "Anthropic", func(b []byte) string {
		var errResp anthropicResponse
		if json.Unmarshal(b, &errResp) == nil && errResp.Error != nil {
			return errResp.Error.Type + ": " + errResp.Error.Message
		}
		return ""
	})
	if err != nil {
		return nil, err
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(raw, &anthResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Anthropic: %v: %w", err, domain.ErrProviderFailure)
	}

	var text strings.Builder
	for _, block := range anthResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return json.RawMessage(extractJSON(text.String())), nil
}

// extractJSON quita el bloque Markdown y, si aún queda texto alrededor, se queda con el primer {...}.
func extractJSON(text string) string {
	cleaned := cleanJSON(text)
	if strings.HasPrefix(cleaned, "{") {
		return cleaned
	}
	if match := jsonBlockRe.FindString(cleaned); match != "" {
		return match
	}
	return cleaned
}
