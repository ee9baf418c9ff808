package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const microsoftAPIURL = "https://api.cognitive.microsofttranslator.com/translate"

// Microsoft translates through the Azure Cognitive Services Translator
// API, ported from original_source/server/src/translator/microsoft.rs.
type Microsoft struct {
	apiKey     string
	targetLang string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewMicrosoft builds a Microsoft-backed translator for the given
// subscription key and target language.
func NewMicrosoft(apiKey, targetLang string) *Microsoft {
	return &Microsoft{
		apiKey:     apiKey,
		targetLang: targetLang,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

func (m *Microsoft) Name() string { return "Microsoft" }

type microsoftRequestItem struct {
	Text string `json:"text"`
}

type microsoftTranslation struct {
	Text string `json:"text"`
}

type microsoftResponseItem struct {
	Translations []microsoftTranslation `json:"translations"`
}

type microsoftAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type microsoftErrorEnvelope struct {
	Error *microsoftAPIError `json:"error"`
}

func (m *Microsoft) Translate(ctx context.Context, text string) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody, err := json.Marshal([]microsoftRequestItem{{Text: text}})
	if err != nil {
		return "", err
	}

	endpoint := microsoftAPIURL + "?" + url.Values{
		"api-version": {"3.0"},
		"to":          {m.targetLang},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("microsoft translate request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := func() ([]byte, error) {
		buf := &bytes.Buffer{}
		_, err := buf.ReadFrom(resp.Body)
		return buf.Bytes(), err
	}()
	if err != nil {
		return "", fmt.Errorf("failed to read microsoft response: %w", err)
	}

	var envelope microsoftErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
		return "", fmt.Errorf("microsoft translate error %d: %s", envelope.Error.Code, envelope.Error.Message)
	}

	var results []microsoftResponseItem
	if err := json.Unmarshal(raw, &results); err != nil {
		return "", fmt.Errorf("failed to parse microsoft response: %w", err)
	}
	if len(results) == 0 || len(results[0].Translations) == 0 {
		return "", fmt.Errorf("unexpected microsoft translate result")
	}
	return results[0].Translations[0].Text, nil
}
