package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
)

// EmailConfig points at a Resend-compatible HTTP email API.
type EmailConfig struct {
	APIKey string
	APIURL string
	From   string
}

func NewEmailConfig() *EmailConfig {
	apiKey := os.Getenv("EMAIL_API_KEY")
	apiURL := os.Getenv("EMAIL_API_URL")
	fromEmail := os.Getenv("EMAIL_FROM")
	if apiKey == "" || apiURL == "" || fromEmail == "" {
		log.Fatal("Missing email environment variables (EMAIL_API_KEY, EMAIL_API_URL, EMAIL_FROM)")
	}
	return &EmailConfig{
		APIKey: apiKey,
		APIURL: apiURL,
		From:   fromEmail}
}

type EmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

// EmailService delivers password resets, adviser-request notices and
// scheduled reminders through the configured API.
type EmailService struct {
	Config *EmailConfig
}

func NewEmailService(lc fx.Lifecycle, config *EmailConfig) *EmailService {
	service := &EmailService{Config: config}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Email Service initialized")
			return nil
		},
	})
	return service
}

func (e *EmailService) SendEmail(to, subject, body string) error {
	payload := EmailRequest{
		From:    e.Config.From,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("Failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest("POST", e.Config.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("Failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+e.Config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("Failed to send Email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResponse)
		return fmt.Errorf("Failed to send email, status code: %d, error: %v", resp.StatusCode, errorResponse)
	}

	log.Println("Email sent successfully to ", to)
	return nil
}
