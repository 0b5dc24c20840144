package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventColumnNames = []string{
	"id", "title", "description", "location", "provider",
	"start_time", "end_time", "is_all_day", "recurrence", "created_at",
}

func TestRepository_SaveEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	tests := []struct {
		name       string
		event      *Event
		mockSetup  func(mock pgxmock.PgxPoolIface)
		wantErr    bool
		wantResult *Event
	}{
		{
			name: "success",
			event: &Event{
				Title:       "Team meeting",
				Description: "Date: monday, Time: 10am",
				Location:    "boardroom",
				Provider:    "google",
				StartTime:   now,
				EndTime:     now.Add(time.Hour),
				Recurrence:  "FREQ=WEEKLY",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()

				rows := pgxmock.NewRows(eventColumnNames).
					AddRow("uuid-1", "Team meeting", "Date: monday, Time: 10am", "boardroom", "google",
						now, now.Add(time.Hour), false, "FREQ=WEEKLY", now)
				mock.ExpectQuery("INSERT INTO events").
					WithArgs("Team meeting", "Date: monday, Time: 10am", "boardroom", "google",
						now, now.Add(time.Hour), false, "FREQ=WEEKLY").
					WillReturnRows(rows)
				mock.ExpectCommit()
			},
			wantErr: false,
			wantResult: &Event{
				Id:          "uuid-1",
				Title:       "Team meeting",
				Description: "Date: monday, Time: 10am",
				Location:    "boardroom",
				Provider:    "google",
				StartTime:   now,
				EndTime:     now.Add(time.Hour),
				Recurrence:  "FREQ=WEEKLY",
				CreatedAt:   now,
			},
		},
		{
			name:  "begin failure",
			event: &Event{Title: "Team meeting"},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("begin error"))
			},
			wantErr: true,
		},
		{
			name:  "insert failure",
			event: &Event{Title: "Team meeting"},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery("INSERT INTO events").
					WithArgs("Team meeting", "", "", "", time.Time{}, time.Time{}, false, "").
					WillReturnError(errors.New("insert error"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name:  "commit failure",
			event: &Event{Title: "Team meeting"},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()

				rows := pgxmock.NewRows(eventColumnNames).
					AddRow("uuid-1", "Team meeting", "", "", "",
						time.Time{}, time.Time{}, false, "", time.Time{})
				mock.ExpectQuery("INSERT INTO events").
					WithArgs("Team meeting", "", "", "", time.Time{}, time.Time{}, false, "").
					WillReturnRows(rows)
				mock.ExpectCommit().WillReturnError(errors.New("commit error"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)

			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewRepository(mock)
			got, err := repo.SaveEvent(ctx, tt.event)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)

				if tt.wantResult != nil {
					assert.Equal(t, tt.wantResult, got)
				}
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetEventById(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	tests := []struct {
		name       string
		id         string
		mockSetup  func(mock pgxmock.PgxPoolIface)
		wantErr    error
		wantResult *Event
	}{
		{
			name: "success",
			id:   "uuid-1",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(eventColumnNames).
					AddRow("uuid-1", "Lunch", "Date: tomorrow, Time: 12pm", "", "",
						now, now.Add(time.Hour), false, "", now)
				mock.ExpectQuery("SELECT (.+) FROM events WHERE id = \\$1").
					WithArgs("uuid-1").
					WillReturnRows(rows)
			},
			wantResult: &Event{
				Id:          "uuid-1",
				Title:       "Lunch",
				Description: "Date: tomorrow, Time: 12pm",
				StartTime:   now,
				EndTime:     now.Add(time.Hour),
				CreatedAt:   now,
			},
		},
		{
			name: "not found",
			id:   "uuid-empty",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM events WHERE id = \\$1").
					WithArgs("uuid-empty").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)

			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewRepository(mock)
			got, err := repo.GetEventById(ctx, tt.id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantResult, got)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		mock, err := pgxmock.NewPool()
		require.NoError(t, err)

		defer mock.Close()

		rows := pgxmock.NewRows(eventColumnNames).
			AddRow("uuid-1", "Lunch", "", "", "", now, now.Add(time.Hour), false, "", now).
			AddRow("uuid-2", "Dinner", "", "bistro", "", now.Add(6*time.Hour), now.Add(7*time.Hour), false, "", now)
		mock.ExpectQuery("SELECT (.+) FROM events ORDER BY start_time ASC").
			WillReturnRows(rows)

		repo := NewRepository(mock)
		got, err := repo.ListEvents(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "uuid-1", got[0].Id)
		assert.Equal(t, "Dinner", got[1].Title)
		assert.Equal(t, "bistro", got[1].Location)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		t.Parallel()

		mock, err := pgxmock.NewPool()
		require.NoError(t, err)

		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM events ORDER BY start_time ASC").
			WillReturnError(errors.New("query error"))

		repo := NewRepository(mock)
		got, err := repo.ListEvents(ctx)

		require.Error(t, err)
		assert.Nil(t, got)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DeleteEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name      string
		id        string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "success",
			id:   "uuid-1",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("DELETE FROM events WHERE id = \\$1").
					WithArgs("uuid-1").
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "not found",
			id:   "uuid-empty",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("DELETE FROM events WHERE id = \\$1").
					WithArgs("uuid-empty").
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)

			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewRepository(mock)
			err = repo.DeleteEvent(ctx, tt.id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_DeleteEventsBefore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cutoff := time.Now().AddDate(-1, 0, 0).Truncate(time.Second)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		mock, err := pgxmock.NewPool()
		require.NoError(t, err)

		defer mock.Close()

		mock.ExpectExec("DELETE FROM events WHERE end_time < \\$1").
			WithArgs(cutoff).
			WillReturnResult(pgxmock.NewResult("DELETE", 42))

		repo := NewRepository(mock)
		purged, err := repo.DeleteEventsBefore(ctx, cutoff)

		require.NoError(t, err)
		assert.Equal(t, int64(42), purged)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec failure", func(t *testing.T) {
		t.Parallel()

		mock, err := pgxmock.NewPool()
		require.NoError(t, err)

		defer mock.Close()

		mock.ExpectExec("DELETE FROM events WHERE end_time < \\$1").
			WithArgs(cutoff).
			WillReturnError(errors.New("exec error"))

		repo := NewRepository(mock)
		purged, err := repo.DeleteEventsBefore(ctx, cutoff)

		require.Error(t, err)
		assert.Zero(t, purged)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
