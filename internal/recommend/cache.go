package recommend

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"seoanalyzer/internal/metrics"
)

// Cached remembers successful recommendations so identical failures on
// repeated analyses do not call the provider again. Errors are not cached.
type Cached struct {
	next  Recommender
	store *gocache.Cache
}

func NewCached(next Recommender, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		store: gocache.New(ttl, 2*ttl),
	}
}

func cacheKey(checkTitle, keyphrase, context string) string {
	return strings.Join([]string{checkTitle, strings.ToLower(strings.TrimSpace(keyphrase)), context}, "\x00")
}

func (c *Cached) Recommend(ctx context.Context, checkTitle, keyphrase, context string) (string, error) {
	key := cacheKey(checkTitle, keyphrase, context)
	if v, ok := c.store.Get(key); ok {
		metrics.ObserveRecommendation(metrics.RecommendationCacheHit)
		return v.(string), nil
	}

	text, err := c.next.Recommend(ctx, checkTitle, keyphrase, context)
	if err != nil {
		return "", err
	}
	c.store.SetDefault(key, text)
	return text, nil
}
