package gallery

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/showcase/showcase-client/client"
	"github.com/showcase/showcase-client/store"
)

// Feed drives incremental loading of the community project list. Items
// accumulate in fetch order within one query; changing the query resets the
// feed and discards the effect of any still-in-flight page.
//
// There is no request cancellation: a response belonging to a superseded
// query is detected by generation comparison and dropped.
type Feed struct {
	c          *client.Client
	pageSize   int
	cacheStore store.Store
	cacheKey   string

	mu          sync.Mutex
	search      string
	course      string
	ordering    string
	generation  int
	items       []client.Project
	currentPage int
	hasMore     bool
	loadingMore bool
}

// NewFeed creates an empty feed sorted newest-first.
func NewFeed(c *client.Client, pageSize int) *Feed {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &Feed{
		c:        c,
		pageSize: pageSize,
		ordering: "-created_at",
		hasMore:  true,
	}
}

// WithCache persists page one of the unfiltered feed under key, so the next
// session can paint the community list before the network answers. Filtered
// results are never cached.
func (f *Feed) WithCache(st store.Store, key string) *Feed {
	f.cacheStore = st
	f.cacheKey = key
	return f
}

// CachedFirstPage returns the stored page-one snapshot. It only applies while
// the feed is unfiltered; once a search or course filter is set the snapshot
// no longer describes the current query.
func (f *Feed) CachedFirstPage() ([]client.Project, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cacheStore == nil || f.search != "" || f.course != "" {
		return nil, false
	}
	raw, ok := f.cacheStore.Get(f.cacheKey)
	if !ok {
		cacheMissesTotal.Inc()
		return nil, false
	}
	var items []client.Project
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Debug().Str("key", f.cacheKey).Err(err).Msg("discarding undecodable cache entry")
		cacheMissesTotal.Inc()
		return nil, false
	}
	cacheHitsTotal.Inc()
	return items, true
}

// SetQuery replaces the active search/course filter and resets accumulated
// state. Pages fetched for the previous query that are still in flight will
// be ignored when they land.
func (f *Feed) SetQuery(search, course string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if search == f.search && course == f.course {
		return
	}
	f.search = search
	f.course = course
	f.generation++
	f.items = nil
	f.currentPage = 0
	f.hasMore = true
	f.loadingMore = false
}

// LoadMore fetches the next page and appends its items. It is a no-op while
// a load is in flight or once the feed is exhausted.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loadingMore || !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	f.loadingMore = true
	gen := f.generation
	page := f.currentPage + 1
	params := client.ListProjectsParams{
		Page:       page,
		PageSize:   f.pageSize,
		Search:     f.search,
		CourseName: f.course,
		Ordering:   f.ordering,
	}
	f.mu.Unlock()

	resp, err := f.c.ListProjects(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		// Query changed while this page was in flight; its result no longer
		// belongs to the feed.
		return nil
	}
	f.loadingMore = false
	if err != nil {
		return err
	}
	f.items = append(f.items, resp.Results...)
	f.currentPage = page
	f.hasMore = resp.HasNext()

	if page == 1 && f.cacheStore != nil && f.search == "" && f.course == "" {
		if raw, merr := json.Marshal(resp.Results); merr == nil {
			if serr := f.cacheStore.Set(f.cacheKey, string(raw)); serr != nil {
				log.Warn().Str("key", f.cacheKey).Err(serr).Msg("failed to update cache")
			}
		}
	}
	return nil
}

// Items returns the accumulated projects in load order.
func (f *Feed) Items() []client.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]client.Project, len(f.items))
	copy(out, f.items)
	return out
}

// HasMore reports whether another page may exist.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// CurrentPage returns the last successfully loaded page number, 0 before the
// first load.
func (f *Feed) CurrentPage() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentPage
}
