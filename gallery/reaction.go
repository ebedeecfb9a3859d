package gallery

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/showcase/showcase-client/client"
)

// ReactionState is the lifecycle of one reaction control.
type ReactionState int

const (
	// ReactionIdle accepts activation.
	ReactionIdle ReactionState = iota
	// ReactionPending has applied the optimistic increment and is waiting
	// for the backend; further activations are ignored, not queued.
	ReactionPending
	// ReactionSettled was confirmed by the backend. There is no un-react, so
	// a settled control stays inert for the rest of the session.
	ReactionSettled
)

// ReactionControl applies the optimistic-update pattern to one reaction
// button: bump the local count immediately, submit, and restore the exact
// prior state if the submission fails.
type ReactionControl struct {
	c         *client.Client
	projectID int
	kind      string

	mu        sync.Mutex
	count     int
	active    bool
	state     ReactionState
	onRefresh func(kind string)
}

// NewReactionControl seeds a control with the server-reported count and
// whether this actor already reacted.
func NewReactionControl(c *client.Client, projectID int, kind string, count int, active bool) *ReactionControl {
	rc := &ReactionControl{c: c, projectID: projectID, kind: kind, count: count, active: active}
	if active {
		rc.state = ReactionSettled
	}
	return rc
}

// OnRefresh registers a callback invoked after a confirmed reaction,
// typically to re-fetch authoritative counts.
func (rc *ReactionControl) OnRefresh(fn func(kind string)) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.onRefresh = fn
}

// Activate submits this actor's reaction. Already-active and in-flight
// controls ignore the call and issue no request. On failure the pre-click
// count and flag are restored exactly and the classified error is returned
// for display.
func (rc *ReactionControl) Activate(ctx context.Context) error {
	rc.mu.Lock()
	if rc.state == ReactionPending || rc.active {
		rc.mu.Unlock()
		return nil
	}
	prevCount, prevActive := rc.count, rc.active
	rc.count++
	rc.active = true
	rc.state = ReactionPending
	rc.mu.Unlock()

	_, err := rc.c.CreateReaction(ctx, client.CreateReactionRequest{
		ProjectID: rc.projectID,
		Kind:      rc.kind,
	})

	rc.mu.Lock()
	if err != nil {
		rc.count = prevCount
		rc.active = prevActive
		rc.state = ReactionIdle
		rc.mu.Unlock()
		rollbacksTotal.Inc()
		log.Warn().Err(err).Int("project_id", rc.projectID).Str("kind", rc.kind).Msg("reaction failed, rolled back")
		return err
	}
	rc.state = ReactionSettled
	refresh := rc.onRefresh
	rc.mu.Unlock()

	if refresh != nil {
		refresh(rc.kind)
	}
	return nil
}

// Count returns the locally visible tally, including any optimistic bump.
func (rc *ReactionControl) Count() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.count
}

// Active reports whether this actor's reaction is applied (optimistically or
// confirmed).
func (rc *ReactionControl) Active() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.active
}

// State returns the control's lifecycle state.
func (rc *ReactionControl) State() ReactionState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.state
}
