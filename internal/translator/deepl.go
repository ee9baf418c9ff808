package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kurenaio/ayt-dictionary/internal/logging"
)

const (
	deeplBaseURL       = "https://api-free.deepl.com"
	deeplBaseURLPro    = "https://api.deepl.com"
	deeplTranslatePath = "/v2/translate"
)

// deeplHTTPErrorMessages maps DeepL's documented status codes to a
// human-readable message, following the table in KEINOS-deepl-go's
// deepl.go client.
var deeplHTTPErrorMessages = map[int]string{
	400: "bad request, check parameters",
	403: "authorization failed, invalid auth_key",
	404: "requested resource not found",
	413: "request size exceeds the limit",
	414: "request URL too long",
	429: "too many requests, slow down",
	456: "quota exceeded",
	500: "internal server error",
	503: "resource currently unavailable",
	529: "too many requests",
}

// DeepLOption configures a DeepL client.
type DeepLOption func(*DeepL)

// WithDeepLPro switches the client to the paid-plan API host.
func WithDeepLPro() DeepLOption {
	return func(d *DeepL) { d.baseURL = deeplBaseURLPro }
}

// WithDeepLHTTPClient overrides the underlying *http.Client, e.g. for
// tests.
func WithDeepLHTTPClient(c *http.Client) DeepLOption {
	return func(d *DeepL) { d.httpClient = c }
}

// DeepL translates through the DeepL REST API, ported in client shape
// from KEINOS-deepl-go's deepl.Client (functional options, a status
// code to message table) and scaled down to the single Translate
// operation the dictionary engine needs.
type DeepL struct {
	authKey    string
	targetLang string
	baseURL    string
	httpClient *http.Client
}

// NewDeepL builds a DeepL-backed translator. targetLang follows DeepL's
// own convention ("EN-US" rather than "en"), translated from the
// original Rust normalization in translator/deepl.rs.
func NewDeepL(authKey, targetLang string, opts ...DeepLOption) *DeepL {
	normalized := strings.ToUpper(targetLang)
	if strings.EqualFold(targetLang, "en") {
		normalized = "EN-US"
	}

	d := &DeepL{
		authKey:    authKey,
		targetLang: normalized,
		baseURL:    deeplBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DeepL) Name() string { return "DeepL" }

type deeplTranslation struct {
	Text string `json:"text"`
}

type deeplResponse struct {
	Translations []deeplTranslation `json:"translations"`
}

func (d *DeepL) Translate(ctx context.Context, text string) (string, error) {
	form := url.Values{
		"text":        {text},
		"target_lang": {d.targetLang},
		"auth_key":    {d.authKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+deeplTranslatePath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if msg, ok := deeplHTTPErrorMessages[resp.StatusCode]; ok {
			return "", fmt.Errorf("deepl translate returned %d: %s", resp.StatusCode, msg)
		}
		return "", fmt.Errorf("deepl translate returned status %d", resp.StatusCode)
	}

	var body deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to parse deepl response: %w", err)
	}
	if len(body.Translations) == 0 {
		return "", fmt.Errorf("deepl returned no translations")
	}
	if len(body.Translations) > 1 {
		logging.Debug("deepl returned multiple translations, using the first")
	}
	return body.Translations[0].Text, nil
}
