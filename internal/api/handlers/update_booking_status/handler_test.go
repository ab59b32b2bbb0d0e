package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WeddingMarketService/internal/api/middleware"
	"github.com/m04kA/WeddingMarketService/internal/domain"
	updateBookingStatus "github.com/m04kA/WeddingMarketService/internal/usecase/update_booking_status"
	"github.com/m04kA/WeddingMarketService/pkg/logger"
)

type fakeUseCase struct {
	got *updateBookingStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updateBookingStatus.Request) (*updateBookingStatus.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &updateBookingStatus.Response{Booking: &domain.Booking{ID: req.BookingID, Status: req.Status}}, nil
}

func serve(uc *fakeUseCase, bookingID, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"bookingId": bookingID})
	r = r.WithContext(middleware.WithIdentity(r.Context(), &domain.Identity{UserID: 5, Role: domain.RoleVendor}))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	w := serve(uc, "12", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12), uc.got.BookingID)
	assert.Equal(t, domain.StatusConfirmed, uc.got.Status)
	assert.Equal(t, int64(5), uc.got.Actor.UserID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid transition", updateBookingStatus.ErrInvalidTransition, http.StatusConflict},
		{"stranger", updateBookingStatus.ErrAccessDenied, http.StatusForbidden},
		{"missing", updateBookingStatus.ErrBookingNotFound, http.StatusNotFound},
		{"internal", updateBookingStatus.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tc.err}, "12", `{"status":"completed"}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestHandle_RejectsUnknownStatusBeforeUseCase(t *testing.T) {
	uc := &fakeUseCase{}
	w := serve(uc, "12", `{"status":"archived"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.got)

	w = serve(uc, "abc", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
