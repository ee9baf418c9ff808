package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kurenaio/ayt-dictionary/internal/logging"
)

const googleAPIURL = "https://translate.googleapis.com/translate_a/single"

// googleRateLimit matches the teacher's justtcg.go pattern of guarding
// an unauthenticated free-tier endpoint with a conservative client-side
// limiter rather than relying on the vendor to reject overage.
var googleRateLimit = rate.Every(200 * time.Millisecond)

// Google translates through the unauthenticated translate_a/single
// endpoint, ported from original_source/server/src/translator/google.rs.
type Google struct {
	sourceLang string
	targetLang string
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// GoogleOption configures a Google client.
type GoogleOption func(*Google)

// WithGoogleAPIURL overrides the translate endpoint, used by tests to
// point at an httptest server instead of the live API.
func WithGoogleAPIURL(apiURL string) GoogleOption {
	return func(g *Google) { g.apiURL = apiURL }
}

// NewGoogle builds a Google-backed translator for a fixed source and
// target language pair.
func NewGoogle(sourceLang, targetLang string, opts ...GoogleOption) *Google {
	g := &Google{
		sourceLang: sourceLang,
		targetLang: targetLang,
		apiURL:     googleAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(googleRateLimit, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Google) Name() string { return "Google" }

func (g *Google) Translate(ctx context.Context, text string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	form := url.Values{
		"client": {"gtx"},
		"sl":     {g.sourceLang},
		"tl":     {g.targetLang},
		"dt":     {"t"},
		"q":      {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	logging.Debug("google translate request: sl=%s tl=%s len=%d", g.sourceLang, g.targetLang, len(text))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate returned status %d", resp.StatusCode)
	}

	var body []interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to parse google translate response: %w", err)
	}

	segments, ok := parseGoogleSegments(body)
	if !ok {
		return "", fmt.Errorf("cannot parse google translate response")
	}
	return strings.Join(segments, ""), nil
}

func parseGoogleSegments(body []interface{}) ([]string, bool) {
	if len(body) == 0 {
		return nil, false
	}
	lines, ok := body[0].([]interface{})
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		pair, ok := line.([]interface{})
		if !ok || len(pair) == 0 {
			return nil, false
		}
		translated, ok := pair[0].(string)
		if !ok {
			return nil, false
		}
		out = append(out, translated)
	}
	return out, true
}
