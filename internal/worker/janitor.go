package worker

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Janitor consumes janitor_queue and removes orphaned upload files left
// behind by course and lecture deletion. Removal is best-effort: record
// deletion has already committed by the time a path is queued, so a
// failed unlink is logged and dropped, never retried into the hot path.
type Janitor struct {
	cfg *config.Config
	rdb *redis.Client
	log zerolog.Logger
}

// NewJanitor creates a new Janitor.
func NewJanitor(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *Janitor {
	return &Janitor{
		cfg: cfg,
		rdb: rdb,
		log: log.With().Str("component", "janitor").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *Janitor) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *Janitor) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.JanitorQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	w.remove(result[1])
}

// remove maps the stored /uploads/... reference onto the upload directory
// and unlinks the file. A path outside /uploads is refused.
func (w *Janitor) remove(ref string) {
	name, ok := strings.CutPrefix(ref, "/uploads/")
	if !ok || name == "" || strings.Contains(name, "/") {
		w.log.Warn().Str("ref", ref).Msg("Refusing to remove file outside upload dir")
		return
	}

	path := filepath.Join(w.cfg.UploadDir, name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		w.log.Error().Err(err).Str("path", path).Msg("File removal failed")
		return
	}

	w.log.Debug().Str("path", path).Msg("File removed")
}

// drain processes all remaining items in the queue before shutdown.
func (w *Janitor) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.JanitorQueue).Result()
		if err != nil {
			break
		}
		w.remove(result)
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
