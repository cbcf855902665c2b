package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notedrive/internal/client/models"
	"github.com/dmitrijs2005/notedrive/internal/common"
	"github.com/dmitrijs2005/notedrive/internal/logging"
	"github.com/dmitrijs2005/notedrive/internal/remote"
)

// Authorizer supplies and invalidates the bearer token used by the remote
// store, and reports the owner identity for the metadata descriptor.
// *auth.Manager satisfies it.
type Authorizer interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
	Owner() string
}

// Persister stores the collection and the sync cursor after a successful
// cycle.
type Persister interface {
	SaveCollection(ctx context.Context, owner string, c *models.Collection) error
	SetLastSync(ctx context.Context, owner string, t time.Time) error
}

// Stats aggregates the per-item outcome of one cycle.
type Stats struct {
	Downloaded int
	Uploaded   int
	LastSync   time.Time
}

// Engine sequences one sync cycle: authorize, provision the folder
// hierarchy, pull remote notes, push local notes, reconcile metadata, stamp
// the cursor. Per-item transfer failures are tolerated; fatal failures
// surface as a *CycleError. Partial merges are never rolled back.
type Engine struct {
	store   remote.Store
	auth    Authorizer
	persist Persister
	log     logging.Logger
	guard   sessionGuard

	now func() time.Time
}

func NewEngine(store remote.Store, auth Authorizer, persist Persister, log logging.Logger) *Engine {
	return &Engine{
		store:   store,
		auth:    auth,
		persist: persist,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// InProgress reports whether a cycle is currently running.
func (e *Engine) InProgress() bool {
	return e.guard.Active()
}

// Run executes one full cycle against the collection, mutating it in place.
// A second call while one is running returns ErrSyncInProgress immediately.
func (e *Engine) Run(ctx context.Context, c *models.Collection) (*Stats, error) {
	session, err := e.guard.begin()
	if err != nil {
		return nil, err
	}
	defer e.guard.end(session)

	// Authorizing.
	if _, err := e.auth.Token(ctx); err != nil {
		return nil, cycleErr(KindAuthRequired, err)
	}
	owner := e.auth.Owner()
	log := e.log.With("owner", owner)

	// Provisioning.
	folders, err := newProvisioner(e.store).provision(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, e.authExpired(err)
		}
		return nil, cycleErr(KindProvisionFailed, err)
	}

	attachments := &attachmentTransfer{store: e.store, folderID: folders.Attachments, log: log}
	notes := &noteTransfer{store: e.store, folderID: folders.Notes, attachments: attachments, log: log}

	stats := &Stats{}

	// Pulling. The pull runs before the push so a note edited on both sides
	// resolves against the freshest pulled copy.
	stats.Downloaded, err = notes.pull(ctx, c)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return stats, e.authExpired(err)
		}
		return stats, cycleErr(KindTransferFailed, err)
	}
	// Merged records may have changed partition markers.
	c.Normalize()

	// Pushing.
	stats.Uploaded, err = notes.push(ctx, c)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return stats, e.authExpired(err)
		}
		return stats, cycleErr(KindTransferFailed, err)
	}

	// Reconciling metadata. Failures here are tolerated: the note transfers
	// already applied are kept and the cycle still succeeds.
	now := e.now()
	reconciler := &metadataReconciler{store: e.store, folderID: folders.Root, log: log}
	if err := reconciler.reconcile(ctx, c, owner, now); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			e.auth.Invalidate()
		}
		log.Warn(ctx, "metadata reconciliation failed", "error", err)
	}

	// Finalize.
	if err := e.persist.SaveCollection(ctx, owner, c); err != nil {
		return stats, fmt.Errorf("persisting collection: %w", err)
	}
	if err := e.persist.SetLastSync(ctx, owner, now); err != nil {
		return stats, fmt.Errorf("stamping last sync time: %w", err)
	}
	stats.LastSync = now

	log.Info(ctx, "sync finished", "downloaded", stats.Downloaded, "uploaded", stats.Uploaded)
	return stats, nil
}

func (e *Engine) authExpired(err error) *CycleError {
	e.auth.Invalidate()
	return cycleErr(KindAuthExpired, err)
}
