package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendEmailPostsToConfiguredAPI(t *testing.T) {
	var got EmailRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := &EmailService{Config: &EmailConfig{
		APIKey: "test-key",
		APIURL: server.URL,
		From:   "noreply@thesistrack.edu",
	}}

	if err := service.SendEmail("adviser@example.edu", "New Adviser Request", "Group 7 requests you."); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if got.From != "noreply@thesistrack.edu" || len(got.To) != 1 || got.To[0] != "adviser@example.edu" {
		t.Fatalf("payload addressing wrong: %+v", got)
	}
	if got.Subject != "New Adviser Request" || got.Html != "Group 7 requests you." {
		t.Fatalf("payload content wrong: %+v", got)
	}
}

func TestSendEmailSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid recipient"})
	}))
	defer server.Close()

	service := &EmailService{Config: &EmailConfig{APIKey: "k", APIURL: server.URL, From: "noreply@thesistrack.edu"}}
	if err := service.SendEmail("bad", "s", "b"); err == nil {
		t.Fatal("API rejection should surface as an error")
	}
}
