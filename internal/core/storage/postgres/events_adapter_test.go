package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
)

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPrepare(regexp.QuoteMeta(querySaveEvent))
	mock.ExpectPrepare(regexp.QuoteMeta(queryLoadDeltaEvents))
	mock.ExpectPrepare(regexp.QuoteMeta(queryLoadEventsBySeqRange))
	mock.ExpectPrepare(regexp.QuoteMeta(queryReadLastSeq))

	adapter, err := NewAdapterWithDB(db)
	require.NoError(t, err)
	return adapter, mock
}

func testPostEvent() *v1.Event {
	return &v1.Event{
		UserID:    "user-1",
		Type:      v1.TypePostCreated,
		CreatedAt: time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC),
		DayKey:    "2025-10-20",
		PostCreated: &v1.PostCreated{
			PostID:        "post-1",
			BoardID:       "board-1",
			ContentLength: 420,
		},
	}
}

func TestAdapter_SaveEventAssignsSeq(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	evt := testPostEvent()

	mock.ExpectQuery(regexp.QuoteMeta(querySaveEvent)).
		WithArgs(
			"user-1",
			v1.TypePostCreated,
			evt.CreatedAt,
			"2025-10-20",
			[]byte(`{"postId":"post-1","boardId":"board-1","contentLength":420}`),
			"post:post-1",
		).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(7)))

	require.NoError(t, adapter.SaveEvent(context.Background(), evt))
	require.Equal(t, int64(7), evt.Seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_SaveEventDuplicate(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	evt := testPostEvent()

	// ON CONFLICT DO NOTHING yields no RETURNING row for duplicates.
	mock.ExpectQuery(regexp.QuoteMeta(querySaveEvent)).
		WithArgs(
			"user-1",
			v1.TypePostCreated,
			evt.CreatedAt,
			"2025-10-20",
			sqlmock.AnyArg(),
			"post:post-1",
		).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}))

	err := adapter.SaveEvent(context.Background(), evt)
	require.ErrorIs(t, err, storage.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_SaveEventRefusesVirtual(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	virtual := v1.NewVirtualDayClosed("user-1", "2025-10-20",
		time.Date(2025, 10, 20, 23, 59, 59, 999999999, time.UTC))

	err := adapter.SaveEvent(context.Background(), virtual)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_LoadDeltaEvents(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	createdAt := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"seq", "user_id", "type", "created_at", "day_key", "payload"}).
		AddRow(int64(6), "user-1", v1.TypePostCreated, createdAt, "2025-10-20",
			[]byte(`{"postId":"post-1","boardId":"board-1","contentLength":420}`)).
		AddRow(int64(7), "user-1", v1.TypeDayClosed, createdAt.Add(15*time.Hour), "2025-10-20",
			[]byte(`{"idempotencyKey":"legacy:2025-10-20"}`))

	mock.ExpectQuery(regexp.QuoteMeta(queryLoadDeltaEvents)).
		WithArgs("user-1", int64(5)).
		WillReturnRows(rows)

	events, err := adapter.LoadDeltaEvents(context.Background(), "user-1", 5)
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.Equal(t, int64(6), events[0].Seq)
	require.Equal(t, "post-1", events[0].PostCreated.PostID)
	require.Equal(t, int64(7), events[1].Seq)
	require.Equal(t, "legacy:2025-10-20", events[1].DayClosed.IdempotencyKey)
	require.False(t, events[1].IsVirtual())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_LoadDeltaEventsBadPayload(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	rows := sqlmock.NewRows([]string{"seq", "user_id", "type", "created_at", "day_key", "payload"}).
		AddRow(int64(1), "user-1", v1.TypePostCreated,
			time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC), "2025-10-20", []byte(`not-json`))

	mock.ExpectQuery(regexp.QuoteMeta(queryLoadDeltaEvents)).
		WithArgs("user-1", int64(0)).
		WillReturnRows(rows)

	_, err := adapter.LoadDeltaEvents(context.Background(), "user-1", 0)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_LoadEventsBySeqRange(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	rows := sqlmock.NewRows([]string{"seq", "user_id", "type", "created_at", "day_key", "payload"}).
		AddRow(int64(2), "user-1", v1.TypePostCreated,
			time.Date(2025, 10, 21, 9, 0, 0, 0, time.UTC), "2025-10-21",
			[]byte(`{"postId":"post-2","boardId":"board-1","contentLength":100}`))

	mock.ExpectQuery(regexp.QuoteMeta(queryLoadEventsBySeqRange)).
		WithArgs("user-1", int64(2), int64(2)).
		WillReturnRows(rows)

	events, err := adapter.LoadEventsBySeqRange(context.Background(), "user-1", 2, 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, int64(2), events[0].Seq)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ReadLastSeq(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryReadLastSeq)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(42)))

	last, err := adapter.ReadLastSeq(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(42), last)
	require.NoError(t, mock.ExpectationsWereMet())
}
