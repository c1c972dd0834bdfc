// Package analysis is the Market Analysis Client: it asks the completion
// service for structured niche research on a topic, retrying failed
// attempts with a linear delay.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/config"
	"github.com/dmitrijs2005/nichescope/internal/logging"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/dmitrijs2005/nichescope/internal/retry"
)

var now = time.Now

type Options struct {
	APIKey         string
	Model          string
	Language       string
	NicheCount     int
	Retry          retry.Policy
	RequestTimeout time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		Language:       cfg.Language,
		NicheCount:     cfg.NicheCount,
		Retry:          retry.Policy{MaxAttempts: cfg.MaxAttempts, BaseDelay: cfg.RetryBaseDelay},
		RequestTimeout: cfg.RequestTimeout,
	}
}

type Client struct {
	opts      Options
	completer Completer
	log       logging.Logger
}

// New returns common.ErrConfiguration when the API key is missing, so no
// request is ever attempted without one.
func New(opts Options, completer Completer, log logging.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, common.ErrConfiguration
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Client{opts: opts, completer: completer, log: log.With("component", "analysis")}, nil
}

// NewGemini builds a Client backed by the Gemini API.
func NewGemini(ctx context.Context, opts Options, log logging.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, common.ErrConfiguration
	}
	completer, err := NewGeminiCompleter(ctx, opts.APIKey, "")
	if err != nil {
		return nil, err
	}
	return New(opts, completer, log)
}

// Analyze runs the research for topic. After the last failed attempt the
// returned error matches both common.ErrAnalysisFailure and the error of
// that attempt.
func (c *Client) Analyze(ctx context.Context, topic string) (*models.AnalysisResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, common.ErrEmptyTopic
	}

	req := Request{
		Model:  c.opts.Model,
		Prompt: BuildPrompt(topic, c.opts.NicheCount, c.opts.Language),
		Schema: ResponseSchema(),
	}

	var result *models.AnalysisResult
	err := c.opts.Retry.Do(ctx, func(ctx context.Context, attempt int) error {
		res, err := c.attempt(ctx, req)
		if err != nil {
			return err
		}
		result = res
		return nil
	}, func(attempt int, delay time.Duration, err error) {
		c.log.Warn(ctx, "analysis attempt failed", "topic", topic, "attempt", attempt, "delay", delay, "error", err)
	})
	if err != nil {
		c.log.Error(ctx, "analysis failed", "topic", topic, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrAnalysisFailure, err)
	}

	Normalize(topic, result, now())
	c.log.Info(ctx, "analysis finished", "topic", topic, "niches", len(result.Niches))
	return result, nil
}

func (c *Client) attempt(ctx context.Context, req Request) (*models.AnalysisResult, error) {
	if c.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.RequestTimeout)
		defer cancel()
	}

	text, err := c.completer.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyResponse
	}

	var res models.AnalysisResult
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	return &res, nil
}
