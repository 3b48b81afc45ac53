package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/affectengine/affectengine/internal/affect"
)

// Doer is the injection seam for tests (spec.md §6's fetchFn): anything
// that can execute an *http.Request. http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures an HTTPClassifier (spec.md §6's enumerated option set).
type Options struct {
	APIKey                string
	BaseURL               string
	Model                 string
	Provider              string // "anthropic" | "openai"
	ClassifierURL         string // bypasses the LLM entirely when set
	EmotionLabels         []string
	ConfidenceMin         float64
	Timeout               time.Duration
	Doer                  Doer
	ClassificationLogPath string
}

// reasoningModelPrefixes lists OpenAI "reasoning" model families that
// reject the temperature field.
var reasoningModelPrefixes = []string{"o1", "o3", "o4"}

func isReasoningModel(model string) bool {
	m := strings.ToLower(model)
	for _, prefix := range reasoningModelPrefixes {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

func detectProvider(opts Options) string {
	if opts.Provider != "" {
		return opts.Provider
	}
	if strings.HasPrefix(strings.ToLower(opts.Model), "claude") {
		return "anthropic"
	}
	return "openai"
}

// HTTPClassifier implements Classifier against either a bypass URL or an
// auto-detected Anthropic/OpenAI chat endpoint, with adaptive rate limiting
// and an append-only JSONL classification log (spec.md §6, §5).
type HTTPClassifier struct {
	opts    Options
	limiter *adaptiveLimiter
	log     *jsonlLog
}

// NewHTTPClassifier builds a classifier from opts. A ConfigError is
// returned if neither ClassifierURL nor APIKey is supplied.
func NewHTTPClassifier(opts Options) (*HTTPClassifier, error) {
	if opts.ClassifierURL == "" && opts.APIKey == "" {
		return nil, newConfigError("classifier requires either ClassifierURL or APIKey")
	}
	if opts.Doer == nil {
		opts.Doer = &http.Client{Timeout: opts.effectiveTimeout()}
	}
	if opts.ConfidenceMin == 0 {
		opts.ConfidenceMin = 0.5
	}

	var l *jsonlLog
	if opts.ClassificationLogPath != "" {
		l = newJSONLLog(opts.ClassificationLogPath)
	}

	return &HTTPClassifier{
		opts:    opts,
		limiter: newAdaptiveLimiter(5, 1, 20),
		log:     l,
	}, nil
}

func (o Options) effectiveTimeout() time.Duration {
	if o.Timeout <= 0 {
		return 10 * time.Second
	}
	return o.Timeout
}

// Classify implements Classifier. Any non-configuration failure collapses
// to a neutral classification (spec.md §4.6 failure semantics); the
// attempt, success flag, and any error are appended to the classification
// log.
func (c *HTTPClassifier) Classify(ctx context.Context, text string, role Role) (Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.effectiveTimeout())
	defer cancel()

	result, err := c.classify(ctx, text, role)
	if err != nil {
		c.logAttempt(text, role, Classification{}, false, err)
		return Neutral(fmt.Sprintf("classification failed: %v", err)), nil
	}

	if result.Confidence < c.opts.ConfidenceMin || !c.isKnownLabel(result.Label) {
		c.logAttempt(text, role, result, true, nil)
		return Neutral("low-confidence or unrecognised label"), nil
	}

	c.logAttempt(text, role, result, true, nil)
	return result, nil
}

func (c *HTTPClassifier) isKnownLabel(label string) bool {
	if len(c.opts.EmotionLabels) == 0 {
		return true
	}
	for _, l := range c.opts.EmotionLabels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

func (c *HTTPClassifier) logAttempt(text string, role Role, result Classification, success bool, err error) {
	if c.log == nil {
		return
	}
	entry := map[string]any{
		"text":    excerpt(text, 200),
		"role":    role,
		"success": success,
	}
	if success {
		entry["label"] = result.Label
		entry["intensity"] = result.Intensity
		entry["confidence"] = result.Confidence
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	c.log.Append(entry)
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func (c *HTTPClassifier) classify(ctx context.Context, text string, role Role) (Classification, error) {
	var raw string
	err := withRetry(ctx, c.limiter, defaultRetryConfig(), func() error {
		var doErr error
		raw, doErr = c.dispatch(ctx, text, role)
		return doErr
	})
	if err != nil {
		return Classification{}, err
	}
	return parseClassification(raw)
}

func (c *HTTPClassifier) dispatch(ctx context.Context, text string, role Role) (string, error) {
	if c.opts.ClassifierURL != "" {
		return c.postBypass(ctx, text, role)
	}
	switch detectProvider(c.opts) {
	case "anthropic":
		return c.postAnthropic(ctx, text, role)
	default:
		return c.postOpenAI(ctx, text, role)
	}
}

func (c *HTTPClassifier) postBypass(ctx context.Context, text string, role Role) (string, error) {
	body, _ := json.Marshal(map[string]string{"text": text, "role": string(role)})
	resp, err := c.doRequest(ctx, "POST", c.opts.ClassifierURL, nil, body)
	if err != nil {
		return "", err
	}
	return resp, nil
}

func classificationPrompt(text string, role Role, labels []string) string {
	labelHint := ""
	if len(labels) > 0 {
		labelHint = "Choose one of: " + strings.Join(labels, ", ") + ". "
	}
	return fmt.Sprintf(
		"Classify the emotional content of this %s message. %sRespond with JSON only: "+
			`{"label":string,"intensity":number 0-1,"reason":string,"confidence":number 0-1}.`+"\n\nMessage: %s",
		role, labelHint, text,
	)
}

func (c *HTTPClassifier) postAnthropic(ctx context.Context, text string, role Role) (string, error) {
	baseURL := c.opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1/messages"
	}
	payload := map[string]any{
		"model":      c.opts.Model,
		"max_tokens": 256,
		"messages": []map[string]string{
			{"role": "user", "content": classificationPrompt(text, role, c.opts.EmotionLabels)},
		},
	}
	body, _ := json.Marshal(payload)
	headers := map[string]string{
		"x-api-key":         c.opts.APIKey,
		"anthropic-version": "2023-06-01",
	}
	resp, err := c.doRequest(ctx, "POST", baseURL, headers, body)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal([]byte(resp), &parsed); err != nil {
		return "", fmt.Errorf("parse anthropic response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("empty anthropic response")
	}
	return parsed.Content[0].Text, nil
}

func (c *HTTPClassifier) postOpenAI(ctx context.Context, text string, role Role) (string, error) {
	baseURL := c.opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1/chat/completions"
	}
	payload := map[string]any{
		"model": c.opts.Model,
		"messages": []map[string]string{
			{"role": "user", "content": classificationPrompt(text, role, c.opts.EmotionLabels)},
		},
	}
	if !isReasoningModel(c.opts.Model) {
		payload["temperature"] = 0.2
	}
	body, _ := json.Marshal(payload)
	headers := map[string]string{"Authorization": "Bearer " + c.opts.APIKey}
	resp, err := c.doRequest(ctx, "POST", baseURL, headers, body)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(resp), &parsed); err != nil {
		return "", fmt.Errorf("parse openai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *HTTPClassifier) doRequest(ctx context.Context, method, url string, headers map[string]string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.opts.Doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return "", &httpStatusError{status: resp.StatusCode, err: fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, excerpt(string(data), 200))}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "json") {
		return "", fmt.Errorf("unexpected content-type %q", contentType)
	}

	return string(data), nil
}

// fencedJSONPattern matches the first ```json ... ``` or ``` ... ``` fenced
// block, non-greedy (spec.md §9).
var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// extractJSON finds the first fenced JSON block in raw, or falls back to
// treating the whole string as JSON.
func extractJSON(raw string) string {
	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

func parseClassification(raw string) (Classification, error) {
	candidate := extractJSON(raw)

	var parsed struct {
		Label      string  `json:"label"`
		Intensity  float64 `json:"intensity"`
		Reason     string  `json:"reason"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return Classification{}, fmt.Errorf("parse classification JSON: %w", err)
	}

	return Classification{
		Label:      strings.ToLower(strings.TrimSpace(parsed.Label)),
		Intensity:  parsed.Intensity,
		Reason:     parsed.Reason,
		Confidence: parsed.Confidence,
	}, nil
}

func newConfigError(msg string) error {
	return affect.NewError(affect.ConfigError, msg, nil)
}
