package bookingapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cleaning_booking/internal/adapters/bookingapi"
	"cleaning_booking/internal/domain"
)

func newClient(t *testing.T, url string) *bookingapi.Client {
	t.Helper()
	cl, err := bookingapi.New(url, 100, 2*time.Second) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func sampleRequest() domain.BookingRequest {
	return domain.BookingRequest{
		UserID: "u-1",
		CleaningData: domain.CleaningData{
			Category:       domain.CategoryStandard,
			Package:        domain.PackageStandard,
			HomeSize:       domain.HomeSmall,
			Frequency:      domain.FrequencyOneTime,
			Items:          domain.BackendRoomSelection{domain.BackendBedrooms: 2},
			EstimatedPrice: 10400,
			EstimatedTime:  "2h ",
		},
	}
}

func TestCreateBooking_201ReturnsData(t *testing.T) {
	var gotAuth, gotPath, gotMethod string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, gotPath, gotMethod = r.Header.Get("Authorization"), r.URL.Path, r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"b1"}}`))
	}))
	defer ts.Close()

	rec, err := newClient(t, ts.URL).CreateBooking(context.Background(), "tok", sampleRequest())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rec) != 1 || rec["id"] != "b1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/v1/house-cleaning/create" || gotAuth != "Bearer tok" {
		t.Fatalf("unexpected request %s %s auth=%q", gotMethod, gotPath, gotAuth)
	}
	for _, k := range []string{"user_id", "cleaningData", "bookingDetails", "customerInfo"} {
		if _, ok := gotBody[k]; !ok {
			t.Fatalf("body missing %q: %v", k, gotBody)
		}
	}
	cd := gotBody["cleaningData"].(map[string]any)
	if cd["estimatedTime"] != "2h " || cd["category"] != "Standard Cleaning" {
		t.Fatalf("unexpected cleaningData: %v", cd)
	}
}

func TestCreateBooking_500UsesServerMessageAndDoesNotRetry(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"server down"}`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).CreateBooking(context.Background(), "tok", sampleRequest())
	if err == nil || err.Error() != "server down" {
		t.Fatalf("expected server down, got %v", err)
	}
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindServer || de.Status != 500 {
		t.Fatalf("unexpected error shape: %#v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected exactly one call, got %d", n)
	}
}

func TestCreateBooking_UnparseableErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).CreateBooking(context.Background(), "tok", sampleRequest())
	if err == nil || err.Error() != "request failed with status 502" {
		t.Fatalf("expected status-derived message, got %v", err)
	}
}

func TestCreateBooking_Any2xxIsSuccess(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		wantID string
	}{
		{"201 empty body", http.StatusCreated, "", ""},
		{"204 no content", http.StatusNoContent, "", ""},
		{"201 scalar data", http.StatusCreated, `{"data":"ok"}`, ""},
		{"200 html", http.StatusOK, `<html>ok</html>`, ""},
		{"200 null data", http.StatusOK, `{"data":null}`, ""},
		{"201 object data", http.StatusCreated, `{"data":{"id":"b9"}}`, "b9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var hits int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(tc.status)
				if tc.body != "" {
					_, _ = w.Write([]byte(tc.body))
				}
			}))
			defer ts.Close()

			rec, err := newClient(t, ts.URL).CreateBooking(context.Background(), "tok", sampleRequest())
			if err != nil {
				t.Fatalf("2xx must not fail, got %v", err)
			}
			if rec == nil || rec.ID() != tc.wantID {
				t.Fatalf("unexpected record: %#v", rec)
			}
			if n := atomic.LoadInt32(&hits); n != 1 {
				t.Fatalf("expected exactly one call, got %d", n)
			}
		})
	}
}

func TestCreateBooking_TransportFailureIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing listens any more

	_, err := newClient(t, url).CreateBooking(context.Background(), "tok", sampleRequest())
	if domain.KindOf(err) != domain.KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestListBookings_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/bookings" || r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "b1"}, {"id": "b2"}}})
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := newClient(t, ts.URL).ListBookings(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[1].ID() != "b2" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 2 {
		t.Fatalf("expected a retry, got %d calls", hits)
	}
}

func TestListBookings_401IsAuthError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).ListBookings(context.Background(), "stale")
	if domain.KindOf(err) != domain.KindAuth || !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestListBookings_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := newClient(t, ts.URL).ListBookings(context.Background(), "tok")
	if !bookingapi.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNew_RequiresBase(t *testing.T) {
	if _, err := bookingapi.New("", 1, time.Second); err == nil {
		t.Fatalf("expected error for empty base")
	}
}
