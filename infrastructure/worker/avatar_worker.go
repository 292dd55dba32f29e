package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"people-service/domain/repositories"
	"people-service/pkg/avatar"
	"people-service/pkg/logger"
)

// AvatarWorker re-derives stored avatar references. Records go stale when
// the avatar configuration changes between deployments.
//
// personRepo must read the store directly, not through the list cache.
type AvatarWorker struct {
	personRepo repositories.PersonRepository
	avatars    *avatar.Generator
	// Optional; dropped once after a run that wrote anything
	listCache repositories.PersonListCache

	// Guards against overlapping runs
	mu      sync.Mutex
	running bool
}

func NewAvatarWorker(personRepo repositories.PersonRepository, avatars *avatar.Generator, listCache repositories.PersonListCache) *AvatarWorker {
	return &AvatarWorker{
		personRepo: personRepo,
		avatars:    avatars,
		listCache:  listCache,
	}
}

// ErrReconcileInProgress is returned when a reconcile is already running.
var ErrReconcileInProgress = errors.New("avatar reconcile already in progress")

// Reconcile writes a fresh avatar for every record whose stored value no
// longer matches its name. A record renamed after it was listed is skipped;
// the rename already stored a matching avatar. It returns the number of
// records updated.
func (w *AvatarWorker) Reconcile(ctx context.Context) (int, error) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return 0, ErrReconcileInProgress
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	start := time.Now()
	people, err := w.personRepo.FindAll(ctx)
	if err != nil {
		logger.WorkerError("avatar_reconcile_list_failed", "Failed to list people", err, nil)
		return 0, fmt.Errorf("list people: %w", err)
	}

	updated, skipped := 0, 0
	defer func() {
		if updated > 0 {
			w.invalidateList(ctx)
		}
	}()

	for _, p := range people {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		want := w.avatars.Derive(p.FirstName, p.LastName)
		if p.AvatarImageURL == want {
			continue
		}

		written, err := w.personRepo.UpdateAvatar(ctx, p.ID, p.FirstName, p.LastName, want)
		if err != nil {
			logger.WorkerError("avatar_reconcile_update_failed", "Failed to update avatar", err, map[string]interface{}{"id": p.ID.String()})
			return updated, fmt.Errorf("update avatar for %s: %w", p.ID, err)
		}
		if !written {
			skipped++
			continue
		}
		updated++
	}

	logger.Worker("avatar_reconcile_done", "Avatar reconcile completed", map[string]interface{}{
		"checked":  len(people),
		"updated":  updated,
		"skipped":  skipped,
		"duration": time.Since(start).String(),
	})
	return updated, nil
}

func (w *AvatarWorker) invalidateList(ctx context.Context) {
	if w.listCache == nil {
		return
	}
	if err := w.listCache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		logger.CacheWarn("invalidate_failed", "Failed to invalidate people list after reconcile", err, nil)
	}
}
