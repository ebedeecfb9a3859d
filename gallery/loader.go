package gallery

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/showcase/showcase-client/store"
)

// Loader is a read-through cache around one fetch: deliver the last known
// value for Key immediately if one is stored, then fetch live, write the
// fresh value back, and deliver it. On fetch failure the stale value stays
// in place — content already delivered is never withdrawn.
type Loader[T any] struct {
	Store store.Store
	Key   string
	// FallbackKeys are legacy keys consulted when Key has no entry. Read
	// only; fresh values are always written to Key.
	FallbackKeys []string
	Fetch        func(ctx context.Context) (T, error)
}

// Load runs the read-through cycle. deliver is called up to twice: once with
// fromCache=true if a cached value decoded, and once with fromCache=false on
// a successful fetch. The returned error is the fetch error, if any.
func (l *Loader[T]) Load(ctx context.Context, deliver func(v T, fromCache bool)) error {
	if raw, ok := l.cachedRaw(); ok {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			cacheHitsTotal.Inc()
			deliver(v, true)
		} else {
			log.Debug().Str("key", l.Key).Err(err).Msg("discarding undecodable cache entry")
			cacheMissesTotal.Inc()
		}
	} else {
		cacheMissesTotal.Inc()
	}

	v, err := l.Fetch(ctx)
	if err != nil {
		return err
	}
	if raw, merr := json.Marshal(v); merr == nil {
		if serr := l.Store.Set(l.Key, string(raw)); serr != nil {
			log.Warn().Str("key", l.Key).Err(serr).Msg("failed to update cache")
		}
	}
	deliver(v, false)
	return nil
}

func (l *Loader[T]) cachedRaw() (string, bool) {
	if raw, ok := l.Store.Get(l.Key); ok {
		return raw, true
	}
	for _, k := range l.FallbackKeys {
		if raw, ok := l.Store.Get(k); ok {
			return raw, true
		}
	}
	return "", false
}
