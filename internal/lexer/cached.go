package lexer

import (
	"context"
	"time"

	"github.com/zjrosen/rainbow/internal/cachemanager"
	"github.com/zjrosen/rainbow/internal/log"
)

// CachedLexer memoises another lexer by line text. Returned slices are
// shared between callers and must not be modified.
type CachedLexer struct {
	rt  *cachemanager.ReadThroughCache[string, []Occurrence, string]
	ttl time.Duration
}

var _ Lexer = (*CachedLexer)(nil)

// NewCached wraps inner with cache. Entries live for ttl and are refreshed
// on every hit, so lines that stay on screen stay cached.
func NewCached(inner Lexer, cache cachemanager.CacheManager[string, []Occurrence], ttl time.Duration) *CachedLexer {
	return &CachedLexer{
		rt: cachemanager.NewReadThroughCache[string, []Occurrence, string](cache,
			func(_ context.Context, line string) ([]Occurrence, error) {
				return inner.Lex(line), nil
			},
			false,
		),
		ttl: ttl,
	}
}

// NewInMemory is NewCached over a fresh go-cache instance.
func NewInMemory(inner Lexer, ttl time.Duration) *CachedLexer {
	cache := cachemanager.NewInMemoryCacheManager[string, []Occurrence]("lexer", ttl, cachemanager.DefaultCleanupInterval)
	return NewCached(inner, cache, ttl)
}

func (c *CachedLexer) Lex(line string) []Occurrence {
	if line == "" {
		return nil
	}
	occ, err := c.rt.GetWithRefresh(context.Background(), line, line, c.ttl)
	if err != nil {
		// The wrapped lexer never fails; keep the contract explicit anyway.
		log.ErrorErr(log.CatCache, "lex through cache failed", err)
		return nil
	}
	return occ
}
