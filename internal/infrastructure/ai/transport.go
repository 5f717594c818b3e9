package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/nexus-procurement/internal/domain"
)

// maxResponseBytes límite de lectura del cuerpo; el inventario generado puede ser largo.
const maxResponseBytes = 1 << 20

func newHTTPClient() *http.Client {
	// Timeout de red; el caso de uso impone además el timeout de análisis vía contexto.
	return &http.Client{Timeout: 60 * time.Second}
}

// send ejecuta la petición y devuelve el cuerpo si el status es 200.
// errBody interpreta el cuerpo de error propio de cada API.
func send(ctx context.Context, client *http.Client, req *http.Request, vendor string, errBody func([]byte) string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(ctx, vendor, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, vendor, err)
	}
	if resp.StatusCode != http.StatusOK {
		if msg := errBody(raw); msg != "" {
			return nil, fmt.Errorf("AI: %s HTTP %d: %s: %w", vendor, resp.StatusCode, msg, domain.ErrProviderFailure)
		}
		return nil, fmt.Errorf("AI: %s HTTP %d: %w", vendor, resp.StatusCode, domain.ErrProviderFailure)
	}
	return raw, nil
}

// transportError distingue timeout (contexto vencido) de cualquier otro fallo.
func transportError(ctx context.Context, vendor string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("AI: %s: %w: %w", vendor, domain.ErrProviderTimeout, ctx.Err())
	}
	if ctx.Err() != nil {
		return fmt.Errorf("AI: %s cancelado: %w: %w", vendor, domain.ErrProviderFailure, ctx.Err())
	}
	return fmt.Errorf("AI: %s llamada HTTP fallida: %v: %w", vendor, err, domain.ErrProviderFailure)
}

var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

// cleanJSON quita el bloque Markdown ```json ... ``` que algunos modelos agregan.
// Texto vacío se interpreta como {}.
func cleanJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return "{}"
	}
	if m := fenceRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}
	if cleaned == "" {
		return "{}"
	}
	return cleaned
}
