package hospitals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wardpass/wardpass/pkg/logging"
)

func TestListHospitals_OrderedByName(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Put(&Hospital{ID: uuid.New(), Name: "Westside Clinic", Hours: DefaultVisitingHours})
	repo.Put(&Hospital{ID: uuid.New(), Name: "Central Hospital", Hours: DefaultVisitingHours})
	handler := NewHandler(repo, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp ListHospitalsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 hospitals, got %d", resp.Count)
	}
	if resp.Hospitals[0].Name != "Central Hospital" {
		t.Fatalf("expected name ordering, got %s first", resp.Hospitals[0].Name)
	}
}

func TestGetHospital_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/"+uuid.NewString(), nil)
	req = withURLParam(req, "hospitalID", uuid.NewString())
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetHospital_InvalidID(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/not-a-uuid", nil)
	req = withURLParam(req, "hospitalID", "not-a-uuid")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetHospital_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	hospital := &Hospital{
		ID:       uuid.New(),
		Name:     "Central Hospital",
		Address:  "42 Main St",
		Timezone: "Europe/Amsterdam",
		Hours:    VisitingHours{OpenHour: 10, CloseHour: 16, SlotMinutes: 30},
	}
	repo.Put(hospital)
	handler := NewHandler(repo, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/"+hospital.ID.String(), nil)
	req = withURLParam(req, "hospitalID", hospital.ID.String())
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var got Hospital
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != hospital.ID || got.Hours.SlotMinutes != 30 {
		t.Fatalf("unexpected hospital payload: %+v", got)
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
