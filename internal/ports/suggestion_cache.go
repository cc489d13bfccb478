package ports

import "context"

// Cache for location search suggestions keyed by normalized query.
type SuggestionCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, suggestions []string) error
}
