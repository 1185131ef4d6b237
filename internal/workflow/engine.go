package workflow

import (
	"context"
	"log/slog"
	"time"

	"trackflow/internal/album"
	"trackflow/internal/faults"
	"trackflow/internal/logging"
)

// Gate answers whether an album may advance past a stage.
type Gate interface {
	Ready(stage int, a *album.Album) (bool, string)
}

// Saver persists an album document.
type Saver interface {
	Save(a *album.Album) error
}

// Engine drives stage transitions. It owns no state of its own; every
// operation mutates the album it is handed and commits through the saver.
type Engine struct {
	store  Saver
	gate   Gate
	logger *slog.Logger
	now    func() time.Time
}

// New builds an engine over the given persistence and gate implementations.
func New(store Saver, gate Gate, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		gate:   gate,
		logger: logging.NewComponentLogger(logger, "workflow"),
		now:    time.Now,
	}
}

// CanAdvance reports whether the album's current stage is complete enough to
// move on. It never mutates the album.
func (e *Engine) CanAdvance(a *album.Album) (bool, string) {
	return e.gate.Ready(a.CurrentStage, a)
}

// Advance moves the album to the next stage and persists it. Stage 7 is
// skipped unless artwork presence has been positively established; advancing
// past stage 10 marks the album completed and leaves the stage at 10. The
// transition is committed only when Save succeeds; on failure the in-memory
// stage and status are restored and the error returned. Album folder and
// correlation fields attached to the context end up on the log record.
func (e *Engine) Advance(ctx context.Context, a *album.Album) error {
	if a.Status == album.StatusCompleted {
		return faults.Wrap(faults.ErrValidation, "workflow", "advance", "album already completed", nil)
	}

	prevStage, prevStatus := a.CurrentStage, a.Status

	next := a.CurrentStage + 1
	if next == album.StageArtworkExchange && !a.ArtworkConfirmed() {
		next = album.StageArchive
	}
	if next > album.StageMax {
		a.Status = album.StatusCompleted
	} else {
		a.CurrentStage = next
		a.Status = album.StatusWaitingUser
	}

	if err := e.store.Save(a); err != nil {
		a.CurrentStage, a.Status = prevStage, prevStatus
		return err
	}

	logging.WithContext(ctx, e.logger).Info("stage advanced",
		logging.Int("from_stage", prevStage),
		logging.Int(logging.FieldStage, a.CurrentStage),
		logging.String("status", string(a.Status)))
	return nil
}

// MarkStageError records an external-tool failure against a stage and
// persists it. The stage itself does not change; the failure never blocks a
// manual retry.
func (e *Engine) MarkStageError(ctx context.Context, a *album.Album, stage int, message string) error {
	prevError, prevStatus := a.LastError, a.Status
	a.SetError(stage, message, e.now())

	if err := e.store.Save(a); err != nil {
		a.LastError, a.Status = prevError, prevStatus
		return err
	}

	logging.WithContext(ctx, e.logger).Warn("stage failure recorded",
		logging.Int(logging.FieldStage, stage),
		logging.String("message", message))
	return nil
}

// ClearError removes a recorded stage failure, returns the album to the
// waiting state, and persists it.
func (e *Engine) ClearError(ctx context.Context, a *album.Album) error {
	prevError, prevStatus := a.LastError, a.Status
	a.ClearError()

	if err := e.store.Save(a); err != nil {
		a.LastError, a.Status = prevError, prevStatus
		return err
	}

	logging.WithContext(ctx, e.logger).Info("stage failure cleared",
		logging.Int(logging.FieldStage, a.CurrentStage))
	return nil
}
