package oracle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL          = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel            = "gemini-2.5-flash-lite"
	DefaultTimeout          = 30 * time.Second
	DefaultFailureThreshold = 3
	DefaultBreakerTimeout   = time.Minute
)

var (
	ErrEmptyResponse  = errors.New("oracle returned no content")
	ErrCircuitOpen    = errors.New("oracle circuit breaker is open")
	ErrOracleDisabled = errors.New("oracle is disabled, no API key configured")
)

type Config struct {
	ApiKey           string
	BaseURL          string
	Model            string
	Timeout          time.Duration
	FailureThreshold int
	BreakerTimeout   time.Duration
}

// OpenAI completes prompts against an OpenAI-compatible chat completion API.
// Calls are guarded by a circuit breaker shared by all requests.
type OpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[string]
}

func NewOpenAI(cfg Config) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = DefaultBreakerTimeout
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.ApiKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		// the categorizer falls back instead of retrying
		option.WithMaxRetries(0),
	)

	threshold := uint32(cfg.FailureThreshold)
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "oracle",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Infof("circuit breaker %s changed state from %s to %s", name, from.String(), to.String())
		},
	})

	return &OpenAI{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		breaker: breaker,
	}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	content, err := o.breaker.Execute(func() (string, error) {
		return o.complete(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrCircuitOpen
	}
	return content, err
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You categorize calendar meetings. Respond with a single JSON object only."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	log.Debugf("oracle responded in %v using model %s", time.Since(start), o.model)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Disabled is used when no API key is configured; every call fails so the
// categorizer uses its keyword fallback.
type Disabled struct{}

func (Disabled) Complete(context.Context, string) (string, error) {
	return "", ErrOracleDisabled
}
