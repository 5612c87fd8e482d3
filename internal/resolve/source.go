package resolve

import (
	"context"

	"github.com/datadonation/dds/internal/model"
)

// CachedSource memoizes FetchRecords per category so that variables sharing
// a category within one resolution call fetch once. Construct a fresh one
// per respondent; reusing it across respondents would serve stale records.
type CachedSource struct {
	src   model.Source
	cache map[string][]model.Record
	errs  map[string]error
}

// NewCachedSource wraps a live provider source with a per-call record cache.
func NewCachedSource(src model.Source) *CachedSource {
	return &CachedSource{
		src:   src,
		cache: make(map[string][]model.Record),
		errs:  make(map[string]error),
	}
}

// FetchRecords returns the cached records for a category, fetching on first
// use. Fetch errors are cached too: a category that failed once is not
// retried within the same call.
func (c *CachedSource) FetchRecords(ctx context.Context, category string) ([]model.Record, error) {
	if err, ok := c.errs[category]; ok {
		return nil, err
	}
	if records, ok := c.cache[category]; ok {
		return records, nil
	}

	records, err := c.src.FetchRecords(ctx, category)
	if err != nil {
		c.errs[category] = err
		return nil, err
	}
	c.cache[category] = records
	return records, nil
}
