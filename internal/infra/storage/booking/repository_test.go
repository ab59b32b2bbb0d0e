package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/domain"
	"github.com/m04kA/WeddingMarketService/pkg/ptr"
	"github.com/m04kA/WeddingMarketService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_UpdateStatus_Conditional(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4")).
		WithArgs("completed", sqlmock.AnyArg(), int64(10), "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 10, domain.StatusConfirmed, domain.StatusCompleted, time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NoRowsMeansChanged(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 10, domain.StatusPending, domain.StatusCancelled, time.Now())
	assert.ErrorIs(t, err, ErrStatusChanged)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(bookingColumns).
		AddRow(int64(5), int64(1), int64(2), time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			"09:00:00", "11:00:00", "", "pending", "TXN_1", 25000.0, "upi", now, now)
	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnRows(rows)

	b, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, types.TimeString("09:00"), b.TimeSlot.Start)
	assert.Equal(t, ptr.Ptr("TXN_1"), b.TransactionID)
	assert.Equal(t, domain.PaymentUPI, ptr.Value(b.PaymentMethod))
}

func TestRepository_Create_DuplicateTransaction(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		UserID:        1,
		VendorID:      2,
		Date:          time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:      domain.DefaultTimeSlots[0],
		Status:        domain.StatusPending,
		TransactionID: ptr.Ptr("TXN_1"),
	})
	assert.ErrorIs(t, err, ErrDuplicateTransaction)
}
