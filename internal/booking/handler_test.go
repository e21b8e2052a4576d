package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestHandler(existing []Booking) *BookingHandler {
	store := newFakeStore()
	for _, b := range existing {
		store.bookings[b.ID] = b
	}
	mirror := NewMirror(&fakeSource{snapshot: existing}, nil)
	mirror.replace(existing)
	svc := NewServiceWith(store, mirror, &recordingSink{})
	return NewBookingHandler(svc, mirror)
}

func doRequest(t *testing.T, handler echo.HandlerFunc, method, target, body string, pathParam ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(pathParam) == 2 {
		c.SetParamNames(pathParam[0])
		c.SetParamValues(pathParam[1])
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestUpdateUnknownBookingReturns404(t *testing.T) {
	h := newTestHandler(nil)
	body := `{"room":"Room-101","start":"2025-03-10T10:00:00Z","end":"2025-03-10T11:00:00Z","groupID":"7"}`

	rec := doRequest(t, h.Update, http.MethodPut, "/api/bookings/x", body, "id", primitive.NewObjectID().Hex())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("editing a missing booking should 404, got %d", rec.Code)
	}
}

func TestDeleteUnknownBookingReturns404(t *testing.T) {
	h := newTestHandler(nil)

	rec := doRequest(t, h.Delete, http.MethodDelete, "/api/bookings/x", "", "id", primitive.NewObjectID().Hex())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleting a missing booking should 404, got %d", rec.Code)
	}
}

func TestConflictingSaveReturns409NamingBooking(t *testing.T) {
	existing := []Booking{{
		ID: primitive.NewObjectID(), Title: "Room-101 - A", Room: "Room-101",
		Start: at(10, 0), End: at(11, 0), GroupID: "A",
	}}
	h := newTestHandler(existing)
	body := `{"room":"Room-101","start":"2025-03-10T10:30:00Z","end":"2025-03-10T11:30:00Z","groupID":"B"}`

	rec := doRequest(t, h.Create, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("overlapping save should 409, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["conflicting"] != "Room-101 - A" {
		t.Fatalf("response should name the colliding booking, got %q", resp["conflicting"])
	}
}
