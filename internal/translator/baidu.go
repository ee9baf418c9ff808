package translator

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const baiduAPIURL = "https://fanyi-api.baidu.com/api/trans/vip/translate"

// Baidu translates through Baidu's general translation API, ported from
// original_source/server/src/translator/baidu.rs.
type Baidu struct {
	appID      string
	secret     string
	targetLang string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewBaidu builds a Baidu-backed translator for the given app
// credentials and target language.
func NewBaidu(appID, secret, targetLang string) *Baidu {
	return &Baidu{
		appID:      appID,
		secret:     secret,
		targetLang: targetLang,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (b *Baidu) Name() string { return "Baidu" }

type baiduTransResult struct {
	Dst string `json:"dst"`
}

type baiduResponse struct {
	TransResult []baiduTransResult `json:"trans_result"`
	ErrorCode   string             `json:"error_code"`
	ErrorMsg    string             `json:"error_msg"`
}

func (b *Baidu) Translate(ctx context.Context, text string) (string, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return "", err
	}

	salt := strconv.Itoa(rand.Int())
	sign := md5Hex(b.appID + text + salt + b.secret)

	form := url.Values{
		"q":     {text},
		"from":  {"jp"},
		"to":    {b.targetLang},
		"appid": {b.appID},
		"salt":  {salt},
		"sign":  {sign},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baiduAPIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("baidu translate request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed baiduResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse baidu response: %w", err)
	}
	if parsed.ErrorCode != "" {
		return "", fmt.Errorf("baidu translate error %s: %s", parsed.ErrorCode, parsed.ErrorMsg)
	}

	segments := make([]string, len(parsed.TransResult))
	for i, r := range parsed.TransResult {
		segments[i] = r.Dst
	}
	return strings.Join(segments, ""), nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
