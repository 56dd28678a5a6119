// Package analysis runs a complete rent-versus-buy projection for a scenario
// and packages the result for export.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iwvelando/rent-vs-buy/internal/cache"
	"github.com/iwvelando/rent-vs-buy/pkg/projection"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"go.uber.org/zap"
)

// Analysis holds everything derived from one scenario.
type Analysis struct {
	Inputs         scenario.Inputs           `json:"inputs"`
	Timeline       projection.Timeline       `json:"timeline"`
	Metrics        projection.Metrics        `json:"metrics"`
	Recommendation projection.Recommendation `json:"recommendation"`
	Insights       projection.Insights       `json:"insights"`
}

// Build runs the projection pipeline without validation or caching.
func Build(in scenario.Inputs) *Analysis {
	timeline := projection.BuildTimeline(in)
	metrics := projection.ComputeMetrics(timeline, in)
	return &Analysis{
		Inputs:         in,
		Timeline:       timeline,
		Metrics:        metrics,
		Recommendation: projection.Recommend(timeline, metrics),
		Insights:       projection.ComputeInsights(timeline, in),
	}
}

// Analyzer validates scenarios and memoizes their analyses.
type Analyzer struct {
	logger *zap.Logger
	cache  cache.Cache
}

// NewAnalyzer creates an Analyzer. A nil cache disables memoization.
func NewAnalyzer(logger *zap.Logger, c cache.Cache) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Analyzer{logger: logger, cache: c}
}

// Analyze validates in and returns its analysis, from the cache when an equal
// scenario was analyzed before. Cache failures are logged and otherwise
// ignored.
func (a *Analyzer) Analyze(ctx context.Context, in scenario.Inputs) (*Analysis, error) {
	if err := validation.ValidateInputs(in); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	key, keyErr := cache.Key(in)
	if keyErr != nil {
		a.logger.Warn("skipping analysis cache",
			zap.String("op", "analysis.Analyze"),
			zap.Error(keyErr),
		)
	}

	if keyErr == nil {
		if cached, ok := a.cache.Get(ctx, key); ok {
			var result Analysis
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				a.logger.Debug("analysis served from cache",
					zap.String("op", "analysis.Analyze"),
				)
				return &result, nil
			}
			a.logger.Warn("discarding unreadable cache entry",
				zap.String("op", "analysis.Analyze"),
			)
		}
	}

	result := Build(in)
	a.logger.Debug(fmt.Sprintf("projected %d months", len(result.Timeline)),
		zap.String("op", "analysis.Analyze"),
		zap.String("recommendation", result.Recommendation.Label),
		zap.Float64("finalNetWorthDelta", result.Recommendation.FinalNetWorthDelta),
	)

	if keyErr == nil {
		encoded, err := json.Marshal(result)
		if err == nil {
			err = a.cache.Set(ctx, key, string(encoded))
		}
		if err != nil {
			a.logger.Warn("failed to cache analysis",
				zap.String("op", "analysis.Analyze"),
				zap.Error(err),
			)
		}
	}

	return result, nil
}

// Packet is the exported analysis summary.
type Packet struct {
	Inputs     scenario.Inputs                      `json:"inputs"`
	Metrics    projection.Metrics                   `json:"metrics"`
	Snapshots  map[string]*projection.TimelinePoint `json:"snapshots"`
	Notes      string                               `json:"notes"`
	ExportedAt time.Time                            `json:"exportedAt"`
}

// NewPacket builds the export packet for an analysis.
func NewPacket(a *Analysis, notes string, now time.Time) Packet {
	return Packet{
		Inputs:     a.Inputs,
		Metrics:    a.Metrics,
		Snapshots:  projection.Snapshots(a.Timeline),
		Notes:      notes,
		ExportedAt: now.UTC(),
	}
}
