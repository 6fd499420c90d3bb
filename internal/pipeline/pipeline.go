// Package pipeline runs one packaging request end to end: gate, validate,
// workspace, synthesize, archive, deliver, release. Every run holds the
// requester's lock and releases its workspace on every exit path.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"lskinbot/internal/journal"
	"lskinbot/internal/logging"
	"lskinbot/internal/manifest"
	"lskinbot/internal/packager"
	"lskinbot/internal/upload"
	"lskinbot/internal/workspace"
)

// Stage names used in structured logs.
const (
	StageValidating   = "validating"
	StageSynthesizing = "synthesizing"
	StageArchiving    = "archiving"
	StageDelivering   = "delivering"
)

// Delivery affordance shown with the finished package.
const (
	DeliveryCaption       = "Here is your skin pack. Install it and enjoy!"
	CreateAnotherLabel    = "Create another"
	CallbackCreateAnother = "create_another"
)

// Authorizer is the subscription gate capability.
type Authorizer interface {
	Authorized(ctx context.Context, userID int64) bool
}

// Fetcher downloads a remote upload reference to a local path.
type Fetcher interface {
	Download(ctx context.Context, fileID, destPath string) error
}

// Deliverer streams files and replies back to the requester.
type Deliverer interface {
	SendDocument(ctx context.Context, chatID int64, path, caption, buttonText, buttonData string) error
}

// Request describes one user-initiated packaging attempt.
type Request struct {
	UserID   int64
	ChatID   int64
	FileID   string
	FileName string
}

// Runner orchestrates the packaging pipeline.
type Runner struct {
	workDir   string
	gate      Authorizer
	fetcher   Fetcher
	deliverer Deliverer
	store     *journal.Store
	logger    *slog.Logger
	locks     *userLocks
}

// NewRunner builds a pipeline runner. The journal store may be nil; attempts
// are then not recorded.
func NewRunner(workDir string, gate Authorizer, fetcher Fetcher, deliverer Deliverer, store *journal.Store, logger *slog.Logger) *Runner {
	return &Runner{
		workDir:   workDir,
		gate:      gate,
		fetcher:   fetcher,
		deliverer: deliverer,
		store:     store,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		locks:     newUserLocks(),
	}
}

// Run executes one packaging attempt. The returned error is classified with
// the package's sentinel markers; UserMessage converts it to the reply text.
// Every image submission is gated independently; a session that already
// passed the gate is re-checked on its next upload.
func (r *Runner) Run(ctx context.Context, req Request) error {
	release := r.locks.Acquire(req.UserID)
	defer release()

	logger := r.logger.With(
		logging.Int64(logging.FieldUserID, req.UserID),
		logging.Int64(logging.FieldChatID, req.ChatID),
	)
	start := time.Now()

	if !r.gate.Authorized(ctx, req.UserID) {
		r.recordOutcome(ctx, logger, req, journal.StatusRejected, "not a channel member")
		return Wrap(ErrUnauthorized, "", "gate", "requester is not a channel member", nil)
	}

	if err := upload.Validate(req.FileName); err != nil {
		logger.Info("upload rejected",
			logging.String("file_name", req.FileName),
			logging.String(logging.FieldStage, StageValidating),
			logging.String(logging.FieldEventType, "upload_rejected"),
		)
		r.recordOutcome(ctx, logger, req, journal.StatusRejected, err.Error())
		return Wrap(ErrValidation, StageValidating, "check extension", "", err)
	}

	entryID := r.recordStart(ctx, logger, req)

	err := r.process(ctx, logger, req)
	if err != nil {
		r.updateEntry(ctx, logger, entryID, journal.StatusFailed, err.Error())
		return err
	}

	r.updateEntry(ctx, logger, entryID, journal.StatusDelivered, "")
	logger.Info("pipeline completed",
		logging.Duration("duration", time.Since(start)),
		logging.String(logging.FieldEventType, "pipeline_complete"),
	)
	return nil
}

// process runs the disk-touching stages inside the workspace scope.
func (r *Runner) process(ctx context.Context, logger *slog.Logger, req Request) error {
	ws, err := workspace.Acquire(r.workDir, req.UserID)
	if err != nil {
		return Wrap(ErrPackaging, "", "acquire workspace", "", err)
	}
	defer ws.Release(logger)

	texturePath := ws.Path(manifest.TextureFileName)
	if err := r.fetcher.Download(ctx, req.FileID, texturePath); err != nil {
		r.logStageFailure(logger, StageSynthesizing, "download image", err)
		return Wrap(ErrPackaging, StageSynthesizing, "download image", "", err)
	}

	if err := manifest.New().Write(ws.Dir()); err != nil {
		r.logStageFailure(logger, StageSynthesizing, "write documents", err)
		return Wrap(ErrPackaging, StageSynthesizing, "write documents", "", err)
	}

	packPath, err := packager.Build(ws.Dir())
	if err != nil {
		r.logStageFailure(logger, StageArchiving, "build archive", err)
		return Wrap(ErrPackaging, StageArchiving, "build archive", "", err)
	}

	if err := r.deliverer.SendDocument(ctx, req.ChatID, packPath, DeliveryCaption, CreateAnotherLabel, CallbackCreateAnother); err != nil {
		r.logStageFailure(logger, StageDelivering, "send document", err)
		return Wrap(ErrDelivery, StageDelivering, "send document", "", err)
	}
	return nil
}

func (r *Runner) logStageFailure(logger *slog.Logger, stage, op string, err error) {
	logger.Error("pipeline stage failed",
		logging.String(logging.FieldStage, stage),
		logging.String("operation", op),
		logging.Error(err),
		logging.String(logging.FieldEventType, "pipeline_stage_failed"),
	)
}

func (r *Runner) recordStart(ctx context.Context, logger *slog.Logger, req Request) int64 {
	if r.store == nil {
		return 0
	}
	entry, err := r.store.Record(ctx, req.UserID, req.ChatID)
	if err != nil {
		logger.Warn("journal record failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "journal_write_failed"),
		)
		return 0
	}
	r.updateEntry(ctx, logger, entry.ID, journal.StatusPackaging, "")
	return entry.ID
}

func (r *Runner) recordOutcome(ctx context.Context, logger *slog.Logger, req Request, status journal.Status, message string) {
	if r.store == nil {
		return
	}
	entry, err := r.store.Record(ctx, req.UserID, req.ChatID)
	if err != nil {
		logger.Warn("journal record failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "journal_write_failed"),
		)
		return
	}
	r.updateEntry(ctx, logger, entry.ID, status, message)
}

func (r *Runner) updateEntry(ctx context.Context, logger *slog.Logger, entryID int64, status journal.Status, message string) {
	if r.store == nil || entryID == 0 {
		return
	}
	if err := r.store.SetStatus(ctx, entryID, status, message); err != nil {
		logger.Warn("journal update failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "journal_write_failed"),
		)
	}
}
