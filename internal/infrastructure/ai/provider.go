package ai

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/pkg/config"
)

// NewProvider elige el adaptador según AI_PROVIDER. Sin API key cae a DisabledProvider.
func NewProvider(cfg config.AIConfig, log zerolog.Logger) ports.AnalysisProvider {
	switch cfg.Provider {
	case config.AIProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Warn().Msg("GEMINI_API_KEY vacío; análisis deshabilitado")
			return DisabledProvider{}
		}
		log.Info().Str("model", cfg.GeminiModel).Msg("proveedor de análisis: Gemini")
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.AIProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			log.Warn().Msg("ANTHROPIC_API_KEY vacío; análisis deshabilitado")
			return DisabledProvider{}
		}
		log.Info().Str("model", cfg.AnthropicModel).Msg("proveedor de análisis: Anthropic")
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		log.Info().Msg("proveedor de análisis deshabilitado")
		return DisabledProvider{}
	}
}
