package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Rahul-Personal-lists/calendar-sync/pkg/resources"
)

type Repository interface {
	SaveEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventById(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	DeleteEvent(ctx context.Context, id string) error
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	tracer  trace.Tracer
	metrics *DBMetrics
	pool    resources.DBInstance
}

func NewRepository(pool resources.DBInstance) Repository {
	return &repository{
		tracer:  otel.GetTracerProvider().Tracer("calendar-sync/core"),
		metrics: NewDBMetrics(),
		pool:    pool,
	}
}

const eventColumns = "id, title, description, location, provider, start_time, end_time, is_all_day, recurrence, created_at"

func (r *repository) SaveEvent(ctx context.Context, event *Event) (*Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "save_event", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.SaveEvent")
	defer span.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var savedEvent Event

	err = tx.QueryRow(ctx,
		"INSERT INTO events (title, description, location, provider, start_time, end_time, is_all_day, recurrence) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) "+
			"RETURNING "+eventColumns,
		event.Title, event.Description, event.Location, event.Provider,
		event.StartTime, event.EndTime, event.IsAllDay, event.Recurrence).
		Scan(&savedEvent.Id, &savedEvent.Title, &savedEvent.Description, &savedEvent.Location,
			&savedEvent.Provider, &savedEvent.StartTime, &savedEvent.EndTime, &savedEvent.IsAllDay,
			&savedEvent.Recurrence, &savedEvent.CreatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &savedEvent, nil
}

func (r *repository) GetEventById(ctx context.Context, id string) (*Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "get_event_by_id", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.GetEventById")
	defer span.End()

	var e Event

	err = r.pool.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = $1",
		id,
	).Scan(&e.Id, &e.Title, &e.Description, &e.Location, &e.Provider,
		&e.StartTime, &e.EndTime, &e.IsAllDay, &e.Recurrence, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}

		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}

	return &e, nil
}

// ListEvents returns every stored event ordered by start time, the same
// ordering the dashboard's event feed uses.
func (r *repository) ListEvents(ctx context.Context) ([]Event, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "list_events", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.ListEvents")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		"SELECT "+eventColumns+" FROM events ORDER BY start_time ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []Event

	for rows.Next() {
		var e Event

		err = rows.Scan(&e.Id, &e.Title, &e.Description, &e.Location, &e.Provider,
			&e.StartTime, &e.EndTime, &e.IsAllDay, &e.Recurrence, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		events = append(events, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return events, nil
}

func (r *repository) DeleteEvent(ctx context.Context, id string) error {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "delete_event", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.DeleteEvent")
	defer span.End()

	tag, err := r.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		err = ErrEventNotFound
		return err
	}

	return nil
}

// DeleteEventsBefore removes events that ended before the cutoff. Used by the
// retention job.
func (r *repository) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	start := time.Now()

	var err error

	defer func() { r.metrics.Observe(ctx, "delete_events_before", start, err) }()

	ctx, span := r.tracer.Start(ctx, "repository.DeleteEventsBefore")
	defer span.End()

	tag, err := r.pool.Exec(ctx, "DELETE FROM events WHERE end_time < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge events: %w", err)
	}

	return tag.RowsAffected(), nil
}

type DBMetrics struct {
	qTotal   metric.Int64Counter
	qErrors  metric.Int64Counter
	qLatency metric.Float64Histogram
}

func NewDBMetrics() *DBMetrics {
	meter := otel.Meter("calendar-sync/db")

	qTotal, _ := meter.Int64Counter("db.query.total")
	qErrors, _ := meter.Int64Counter("db.query.errors.total")
	qLatency, _ := meter.Float64Histogram("db.query.duration.ms")

	return &DBMetrics{qTotal: qTotal, qErrors: qErrors, qLatency: qLatency}
}

func (m *DBMetrics) Observe(ctx context.Context, op string, start time.Time, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgres"),
		attribute.String("db.operation", op),
	}

	m.qTotal.Add(ctx, 1, metric.WithAttributes(attrs...))

	ms := float64(time.Since(start).Milliseconds())
	m.qLatency.Record(ctx, ms, metric.WithAttributes(attrs...))

	if err != nil {
		m.qErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
