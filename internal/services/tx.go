package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	perr "github.com/yungbote/servicehub-backend/internal/pkg/errors"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

var tracer = otel.Tracer("github.com/yungbote/servicehub-backend/internal/services")

const txAttempts = 3

// inTx runs fn in one transaction. A caller-supplied dbc.Tx becomes the
// parent, so the work nests as a savepoint and commits with the caller.
// Top-level transactions that lose a serialization or deadlock race are
// retried from the start.
func inTx(db *gorm.DB, dbc dbctx.Context, fn func(dbctx.Context) error) error {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Context()).Transaction(func(tx *gorm.DB) error {
			return fn(dbc.WithTx(tx))
		})
	}
	var err error
	for attempt := 1; attempt <= txAttempts; attempt++ {
		err = db.WithContext(dbc.Context()).Transaction(func(tx *gorm.DB) error {
			return fn(dbc.WithTx(tx))
		})
		if err == nil || !retryable(err) || dbc.Context().Err() != nil {
			return err
		}
	}
	return err
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch strings.TrimSpace(pgErr.Code) {
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return true
	}
	return false
}

// storageErr tags a persistence failure so the facade can report it
// without leaking the driver message.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, perr.ErrStorage) || errors.Is(err, perr.ErrNotFound) ||
		errors.Is(err, perr.ErrInvalidStatus) || errors.Is(err, perr.ErrInvalidArgument) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23503", "23505": // foreign_key_violation, unique_violation
			return fmt.Errorf("%w: %s: %w: %w", perr.ErrStorage, op, perr.ErrConstraint, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", perr.ErrStorage, op, err)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// publishCommitted publishes evt once the transaction that produced it is
// durable. When the caller owns the transaction the publish is queued on
// dbc.AfterCommit; without a queue the event is withheld, since the caller
// may still roll back.
func publishCommitted(dbc dbctx.Context, log *logger.Logger, b bus.Bus, evt realtime.Event) {
	if dbc.Tx == nil {
		publish(dbc.Context(), log, b, evt)
		return
	}
	if dbc.AfterCommit == nil {
		if log != nil {
			log.Debug("event withheld: caller transaction has no after-commit queue", "event", string(evt.Type))
		}
		return
	}
	dbc.AfterCommit.Add(func(ctx context.Context) { publish(ctx, log, b, evt) })
}

// publish announces a committed change. Delivery is best effort; a broker
// outage never fails the request that produced the event.
func publish(ctx context.Context, log *logger.Logger, b bus.Bus, evt realtime.Event) {
	if b == nil {
		return
	}
	if err := b.Publish(ctx, evt); err != nil && log != nil {
		log.Warn("event publish failed", "event", string(evt.Type), "error", err)
	}
}
