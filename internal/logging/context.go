package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldAlbum is the standardized structured logging key for album folder paths.
	FieldAlbum = "album"
	// FieldStage is the standardized structured logging key for workflow stage numbers.
	FieldStage = "stage"
	// FieldTrackID is the standardized structured logging key for track identifiers.
	FieldTrackID = "track_id"
	// FieldCorrelationID is the standardized structured logging key for operation correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

type contextKey int

const (
	albumContextKey contextKey = iota
	stageContextKey
	correlationContextKey
)

// WithAlbum attaches an album folder path to the context for log enrichment.
func WithAlbum(ctx context.Context, folder string) context.Context {
	return context.WithValue(ctx, albumContextKey, folder)
}

// WithStage attaches a workflow stage number to the context for log enrichment.
func WithStage(ctx context.Context, stage int) context.Context {
	return context.WithValue(ctx, stageContextKey, stage)
}

// WithCorrelationID attaches an operation correlation id to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationContextKey, id)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if folder, ok := ctx.Value(albumContextKey).(string); ok && folder != "" {
		fields = append(fields, slog.String(FieldAlbum, folder))
	}
	if stage, ok := ctx.Value(stageContextKey).(int); ok {
		fields = append(fields, slog.Int(FieldStage, stage))
	}
	if id, ok := ctx.Value(correlationContextKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldCorrelationID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
