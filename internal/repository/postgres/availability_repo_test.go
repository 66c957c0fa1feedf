package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"meetgrid/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var availabilityCols = []string{"id", "response_id", "start_time", "end_time", "kind"}

func sampleIntervals() []*domain.Interval {
	return []*domain.Interval{
		{
			ID:         "iv-1",
			ResponseID: "resp-1",
			Start:      time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC),
			End:        time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
			Kind:       domain.KindAvailable,
		},
		{
			ID:         "iv-2",
			ResponseID: "resp-1",
			Start:      time.Date(2025, 3, 11, 13, 0, 0, 0, time.UTC),
			End:        time.Date(2025, 3, 11, 13, 0, 0, 0, time.UTC),
			Kind:       domain.KindIfNeeded,
		},
	}
}

func expectInsert(mock sqlmock.Sqlmock) *sqlmock.ExpectedExec {
	return mock.ExpectExec(`INSERT INTO availabilities \(id, response_id, start_time, end_time, kind\)\s+SELECT \* FROM unnest`).
		WithArgs(
			pq.Array([]string{"iv-1", "iv-2"}),
			pq.Array([]string{"resp-1", "resp-1"}),
			pq.Array([]string{"2025-03-10T13:00:00Z", "2025-03-11T13:00:00Z"}),
			pq.Array([]string{"2025-03-10T15:00:00Z", "2025-03-11T13:00:00Z"}),
			pq.Array([]string{"available", "if_needed"}),
		)
}

func TestAvailabilityRepository_CreateMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectInsert(mock).WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewAvailabilityRepository(db)
	require.NoError(t, repo.CreateMany(context.Background(), sampleIntervals()))
	require.NoError(t, repo.CreateMany(context.Background(), nil), "empty input issues no statement")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_Replace(t *testing.T) {
	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM availabilities WHERE response_id = \$1`).
					WithArgs("resp-1").
					WillReturnResult(sqlmock.NewResult(0, 4))
				expectInsert(mock).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name: "insert fails rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM availabilities`).
					WithArgs("resp-1").
					WillReturnResult(sqlmock.NewResult(0, 4))
				expectInsert(mock).WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "begin fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewAvailabilityRepository(db).Replace(context.Background(), "resp-1", sampleIntervals())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAvailabilityRepository_ListByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	mock.ExpectQuery(`FROM availabilities a\s+INNER JOIN responses r ON r.id = a.response_id\s+WHERE r.event_id = \$1`).
		WithArgs("abcde12345").
		WillReturnRows(sqlmock.NewRows(availabilityCols).
			AddRow("iv-1", "resp-1", time.Date(2025, 3, 10, 9, 0, 0, 0, ny), time.Date(2025, 3, 10, 11, 0, 0, 0, ny), "available").
			AddRow("iv-2", "resp-2", time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), "if_needed"))

	got, err := NewAvailabilityRepository(db).ListByEventID(context.Background(), "abcde12345")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), got[0].Start)
	require.Equal(t, time.UTC, got[0].Start.Location())
	require.Equal(t, domain.KindIfNeeded, got[1].Kind)
	require.True(t, got[1].IsFullDay())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_ListByResponseID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM availabilities\s+WHERE response_id = \$1`).
		WithArgs("resp-1").
		WillReturnRows(sqlmock.NewRows(availabilityCols))
	mock.ExpectQuery(`FROM availabilities\s+WHERE response_id = \$1`).
		WithArgs("resp-2").
		WillReturnError(sql.ErrConnDone)

	repo := NewAvailabilityRepository(db)
	got, err := repo.ListByResponseID(context.Background(), "resp-1")
	require.NoError(t, err)
	require.Empty(t, got)
	require.NotNil(t, got)

	_, err = repo.ListByResponseID(context.Background(), "resp-2")
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}
