// Package cache memoizes serialized projection results keyed by scenario.
package cache

import (
	"context"
	"fmt"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
)

// Cache stores string values by key. A miss and a backend failure both report
// ok == false from Get.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key returns the cache key for a scenario. Equal inputs share a key.
func Key(in scenario.Inputs) (string, error) {
	code, err := scenario.EncodeShareCode(in)
	if err != nil {
		return "", fmt.Errorf("failed to derive cache key: %w", err)
	}
	return constants.CacheKeyPrefix + code, nil
}

// Nop never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) (string, bool) { return "", false }

// Set discards the value.
func (Nop) Set(context.Context, string, string) error { return nil }

var (
	_ Cache = Nop{}
	_ Cache = (*Memory)(nil)
	_ Cache = (*Redis)(nil)
)
