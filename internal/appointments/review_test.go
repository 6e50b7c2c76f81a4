package appointments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardpass/wardpass/internal/identity"
	"github.com/wardpass/wardpass/pkg/logging"
)

func asStaff(r *http.Request, staffID string) *http.Request {
	return r.WithContext(identity.WithStaff(r.Context(), staffID))
}

func newReviewFixture(t *testing.T) (*serviceFixture, *ReviewHandler) {
	t.Helper()
	f := newServiceFixture(t)
	return f, NewReviewHandler(f.service, logging.NewWithWriter(io.Discard, "error"))
}

func TestReviewList_DefaultsToPending(t *testing.T) {
	f, h := newReviewFixture(t)
	ctx := context.Background()

	appt, err := f.service.Book(ctx, f.bookingRequest(futureDay().Add(9*time.Hour)))
	require.NoError(t, err)
	other, err := f.service.Book(ctx, f.bookingRequest(futureDay().Add(10*time.Hour)))
	require.NoError(t, err)
	_, err = f.service.Decide(ctx, other.ID, StatusApproved)
	require.NoError(t, err)

	req := asStaff(httptest.NewRequest(http.MethodGet, "/staff/appointments", nil), "staff-1")
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, appt.ID, resp.Appointments[0].ID)
}

func TestReviewList_UnknownStatus(t *testing.T) {
	_, h := newReviewFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/staff/appointments?status=archived", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewApprove(t *testing.T) {
	f, h := newReviewFixture(t)

	appt, err := f.service.Book(context.Background(), f.bookingRequest(futureDay().Add(9*time.Hour)))
	require.NoError(t, err)

	req := asStaff(httptest.NewRequest(http.MethodPost, "/staff/appointments/"+appt.ID.String()+"/approve", nil), "staff-1")
	req = withURLParam(req, "appointmentID", appt.ID.String())
	w := httptest.NewRecorder()

	h.Approve(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var decided Appointment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&decided))
	assert.Equal(t, StatusApproved, decided.Status)
}

func TestReviewReject_ThenApproveConflicts(t *testing.T) {
	f, h := newReviewFixture(t)

	appt, err := f.service.Book(context.Background(), f.bookingRequest(futureDay().Add(9*time.Hour)))
	require.NoError(t, err)

	reject := asStaff(httptest.NewRequest(http.MethodPost, "/staff/appointments/"+appt.ID.String()+"/reject", nil), "staff-1")
	reject = withURLParam(reject, "appointmentID", appt.ID.String())
	w := httptest.NewRecorder()
	h.Reject(w, reject)
	require.Equal(t, http.StatusOK, w.Code)

	approve := asStaff(httptest.NewRequest(http.MethodPost, "/staff/appointments/"+appt.ID.String()+"/approve", nil), "staff-1")
	approve = withURLParam(approve, "appointmentID", appt.ID.String())
	w = httptest.NewRecorder()
	h.Approve(w, approve)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewDecide_NotFound(t *testing.T) {
	_, h := newReviewFixture(t)

	id := uuid.NewString()
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/staff/appointments/"+id+"/approve", nil), "appointmentID", id)
	w := httptest.NewRecorder()

	h.Approve(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewDecide_BadID(t *testing.T) {
	_, h := newReviewFixture(t)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/staff/appointments/nope/approve", nil), "appointmentID", "nope")
	w := httptest.NewRecorder()

	h.Approve(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
