// Package vision implements the detection client against the OpenAI chat
// completions API.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	detectionservice "github.com/TanzimK12/pvm-kingdom/app/modules/detection/application"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
)

const detectionPrompt = `You are reading an Old School RuneScape drop screenshot.
Reply with strict JSON only, no prose, in this exact shape:
{"items": ["item name", ...], "rsn": "player name shown in the screenshot"}
List every obtained item name you can read. If no player name is visible use an empty string for rsn.`

// Client calls the OpenAI vision API with a rate limiter in front.
type Client struct {
	api     openai.Client
	model   string
	limiter *rate.Limiter
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a vision client. requestInterval spaces out calls so a
// burst of submissions cannot blow the provider rate limit.
func NewClient(apiKey, model string, requestInterval time.Duration, logger *slog.Logger) *Client {
	every := rate.Inf
	if requestInterval > 0 {
		every = rate.Every(requestInterval)
	}
	return &Client{
		api:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		limiter: rate.NewLimiter(every, 1),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Analyze fetches the screenshot, sends it to the model and parses the
// response. A transient image-fetch failure yields an empty result with no
// error: the caller treats it like a screenshot with nothing detectable.
func (c *Client) Analyze(ctx context.Context, imageURL string) (detectionservice.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return detectionservice.Result{}, fmt.Errorf("vision rate limit wait: %w", err)
	}

	dataURL, ok := c.fetchImage(ctx, imageURL)
	if !ok {
		return detectionservice.Result{}, nil
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(detectionPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		if isQuotaError(err) {
			return detectionservice.Result{}, detectionservice.ErrQuotaExceeded
		}
		return detectionservice.Result{}, fmt.Errorf("vision completion: %w", err)
	}

	result := detectionservice.Result{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}
	if len(resp.Choices) > 0 {
		items, rsn := ParseDetection(resp.Choices[0].Message.Content)
		result.Items = items
		result.RSN = rsn
	}
	return result, nil
}

// fetchImage downloads the screenshot and packs it into a base64 data URL.
func (c *Client) fetchImage(ctx context.Context, imageURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "Bad screenshot URL", attr.String("url", imageURL), attr.Error(err))
		return "", false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Screenshot fetch failed", attr.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "Screenshot fetch returned non-200",
			attr.Int("status", resp.StatusCode),
		)
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		c.logger.WarnContext(ctx, "Screenshot read failed", attr.Error(err))
		return "", false
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), true
}

// isQuotaError recognizes billing refusals: HTTP 429 or the provider's
// insufficient_quota code.
func isQuotaError(err error) bool {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return false
	}
	if apierr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(apierr.Code, "insufficient_quota") ||
		strings.Contains(apierr.Type, "insufficient_quota")
}

var _ detectionservice.Client = (*Client)(nil)
