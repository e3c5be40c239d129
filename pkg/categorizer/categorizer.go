package categorizer

import (
	"context"
	"fmt"
	"time"

	"github.com/klokku/meeting-fatigue/internal/metrics"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBatchSize  = 25
	DefaultBatchDelay = time.Second
)

type Service interface {
	Categorize(ctx context.Context, events []meeting.RawEvent) map[string]meeting.Category
}

type Config struct {
	BatchSize  int
	BatchDelay time.Duration
}

// Categorizer assigns a category to every event: fast title rules first, then one
// oracle call per batch of the remaining events, with a keyword fallback per batch.
type Categorizer struct {
	oracle     Oracle
	batchSize  int
	batchDelay time.Duration
	metrics    *metrics.Recorder
}

func NewCategorizer(oracle Oracle, cfg Config, recorder *metrics.Recorder) *Categorizer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	batchDelay := cfg.BatchDelay
	if batchDelay < 0 {
		batchDelay = 0
	}
	return &Categorizer{
		oracle:     oracle,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		metrics:    recorder,
	}
}

func (c *Categorizer) Categorize(ctx context.Context, events []meeting.RawEvent) map[string]meeting.Category {
	results := make(map[string]meeting.Category, len(events))
	if len(events) == 0 {
		return results
	}

	needsOracle := make([]meeting.RawEvent, 0, len(events))
	for _, event := range events {
		if category, ok := FastMatch(event); ok {
			results[event.Id] = category
			continue
		}
		needsOracle = append(needsOracle, event)
	}
	c.metrics.Categorized("fast_path", len(events)-len(needsOracle))
	log.Debugf("%d of %d meetings matched by title rules", len(events)-len(needsOracle), len(events))

	for start := 0; start < len(needsOracle); start += c.batchSize {
		end := min(start+c.batchSize, len(needsOracle))
		batch := needsOracle[start:end]

		categories, err := c.classifyBatch(ctx, batch)
		if err != nil {
			log.Warnf("batch categorization failed, falling back to patterns: %v", err)
			c.metrics.OracleBatch(false)
			for _, event := range batch {
				results[event.Id] = FallbackMatch(event)
			}
			c.metrics.Categorized("fallback", len(batch))
		} else {
			c.metrics.OracleBatch(true)
			for _, event := range batch {
				category, ok := categories[event.Id]
				if !ok {
					category = meeting.Other
				}
				results[event.Id] = category
			}
			c.metrics.Categorized("oracle", len(batch))
		}

		if end < len(needsOracle) {
			c.pause(ctx)
		}
	}

	return results
}

func (c *Categorizer) classifyBatch(ctx context.Context, batch []meeting.RawEvent) (map[string]meeting.Category, error) {
	prompt, err := buildPrompt(batch)
	if err != nil {
		return nil, err
	}
	response, err := c.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("oracle call failed: %w", err)
	}
	log.Tracef("oracle response: %s", response)
	return ParseCategories(response)
}

// pause waits between oracle batches to stay under the oracle's rate limit.
func (c *Categorizer) pause(ctx context.Context) {
	if c.batchDelay == 0 {
		return
	}
	timer := time.NewTimer(c.batchDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
