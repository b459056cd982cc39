// Package engine runs tag-and-move batches, either with a tag chosen by the
// user or with tags derived from each document's text.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/shelf/internal/common"
	"github.com/Veraticus/shelf/internal/model"
	"github.com/Veraticus/shelf/internal/tag"
	"github.com/google/uuid"
)

// noReadableTextMessage is recorded for documents whose text is blank.
const noReadableTextMessage = "No readable text found"

// Engine orchestrates extraction, classification and moving. It is strictly
// sequential: files are handled in caller order and tag groups are moved in
// the order their tag was first seen.
type Engine struct {
	extractor  TextExtractor
	classifier Classifier
	mover      Mover
	journal    Journal
	observer   Observer
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithJournal records every finished batch in j.
func WithJournal(j Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// WithObserver reports batch progress to o.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = common.LoggerOrDefault(l)
	}
}

// New creates an engine. The classifier may be nil when only manual
// batches are run.
func New(extractor TextExtractor, classifier Classifier, mover Mover, opts ...Option) *Engine {
	e := &Engine{
		extractor:  extractor,
		classifier: classifier,
		mover:      mover,
		observer:   nopObserver{},
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MoveWithTag moves paths into baseFolder/<tag>. The folder, tag and
// selection are validated before the filesystem is touched.
func (e *Engine) MoveWithTag(ctx context.Context, baseFolder, rawTag string, paths []string) (model.MoveResult, error) {
	if baseFolder == "" {
		return model.MoveResult{}, common.ErrNoFolder
	}
	folderTag, err := tag.Validate(rawTag)
	if err != nil {
		return model.MoveResult{}, err
	}
	if len(paths) == 0 {
		return model.MoveResult{}, common.ErrNoSelection
	}

	started := e.now()
	e.logger.Info("Starting manual batch", "folder", baseFolder, "tag", folderTag, "files", len(paths))

	e.observer.StageChanged(StageMoving)
	result := e.mover.MoveBatch(filepath.Join(baseFolder, folderTag), paths)

	e.finish(ctx, model.BatchRecord{
		StartedAt:  started,
		Mode:       model.ModeManual,
		BaseFolder: baseFolder,
		Tag:        folderTag,
		Result:     result,
	})
	return result, nil
}

// AutoTag classifies each path and moves it into baseFolder/<derived tag>.
// Files that cannot be read or classified are recorded as errors and the
// batch carries on with the rest.
func (e *Engine) AutoTag(ctx context.Context, baseFolder string, paths []string) (model.MoveResult, error) {
	if baseFolder == "" {
		return model.MoveResult{}, common.ErrNoFolder
	}
	if len(paths) == 0 {
		return model.MoveResult{}, common.ErrNoSelection
	}
	if e.classifier == nil {
		return model.MoveResult{}, common.NewUserError("auto-tagging is not configured", common.ErrMissingConfig)
	}

	started := e.now()
	e.logger.Info("Starting auto-tag batch", "folder", baseFolder, "files", len(paths))

	var result model.MoveResult
	groups := model.NewTagGroups()

	e.observer.StageChanged(StageScanning)
	for i, path := range paths {
		folderTag, err := e.tagFor(ctx, path)
		if err != nil {
			e.logger.Warn("Could not tag file", "path", path, "error", err)
			result.AddError(path, errorMessage(err))
		} else {
			groups.Add(folderTag, path)
		}
		e.observer.FileProcessed(path, i+1, len(paths))
	}

	e.observer.StageChanged(StageGrouping)
	e.logger.Debug("Grouped files by tag", "groups", groups.Len())

	e.observer.StageChanged(StageMoving)
	for _, group := range groups.Groups() {
		batch := e.mover.MoveBatch(filepath.Join(baseFolder, group.Tag), group.Paths)
		result.Merge(batch)
	}

	e.finish(ctx, model.BatchRecord{
		StartedAt:  started,
		Mode:       model.ModeAuto,
		BaseFolder: baseFolder,
		Result:     result,
	})
	return result, nil
}

// tagFor extracts the text of path and asks the classifier for its tag.
func (e *Engine) tagFor(ctx context.Context, path string) (string, error) {
	text, err := e.extractor.Extract(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", common.ErrNoReadableText
	}

	raw, err := e.classifier.Classify(ctx, text)
	if err != nil {
		return "", err
	}

	folderTag, err := tag.Validate(tag.Truncate(tag.Sanitize(raw), tag.MaxLength))
	if err != nil {
		return tag.Fallback, nil
	}
	return folderTag, nil
}

// finish reports the batch and writes it to the journal. Journal failures
// are logged only. The record is written even when ctx was canceled
// mid-batch, since the moves already happened.
func (e *Engine) finish(ctx context.Context, record model.BatchRecord) {
	e.observer.StageChanged(StageReporting)

	record.ID = e.newID()
	record.FinishedAt = e.now()

	e.logger.Info("Batch finished",
		"mode", record.Mode,
		"moved", record.Result.Moved,
		"skipped", record.Result.Skipped,
		"errors", record.Result.ErrorCount(),
		"duration", record.Duration())

	if e.journal != nil {
		if err := e.journal.SaveBatch(context.WithoutCancel(ctx), record); err != nil {
			e.logger.Error("Failed to record batch", "id", record.ID, "error", err)
		}
	}

	e.observer.StageChanged(StageIdle)
}

func errorMessage(err error) string {
	if errors.Is(err, common.ErrNoReadableText) {
		return noReadableTextMessage
	}
	return err.Error()
}
