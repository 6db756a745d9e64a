package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bugemco/multimedia-request-hub/models"
	"github.com/bugemco/multimedia-request-hub/utils"
)

func testPayload() StatusUpdateEmail {
	return StatusUpdateEmail{
		TaskCode:      "MMR/20250901/000007",
		EmployeeEmail: "juan@company.com",
		EmployeeName:  "Juan Dela Cruz",
		Status:        models.StatusCompleted,
		TaskType:      models.TaskVideoEditing,
		Description:   "Cut the orientation video down to five minutes",
		Deadline:      time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestMailerService_ValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *MailerConfig
		wantErr bool
	}{
		{
			name: "valid config",
			config: &MailerConfig{
				Endpoint: "https://api.resend.com/emails",
				APIKey:   "test-key",
				Sender:   "noreply@company.com",
			},
			wantErr: false,
		},
		{
			name: "missing endpoint",
			config: &MailerConfig{
				Sender: "noreply@company.com",
			},
			wantErr: true,
		},
		{
			name: "missing sender",
			config: &MailerConfig{
				Endpoint: "https://api.resend.com/emails",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := NewMailerService(tt.config)
			err := ms.ValidateConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComposeStatusUpdate(t *testing.T) {
	subject, html, err := ComposeStatusUpdate(testPayload())
	assert.NoError(t, err)

	assert.Equal(t, "Task Status Update: MMR/20250901/000007 - Completed", subject)
	assert.Contains(t, html, "Dear Juan Dela Cruz")
	assert.Contains(t, html, "Video Editing")
	assert.Contains(t, html, "Completed")
	assert.Contains(t, html, "Monday, September 15, 2025")
}

func TestSendStatusUpdateDelivers(t *testing.T) {
	utils.InitLogger()

	var got sendEmailRequest
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg-123"}`))
	}))
	defer server.Close()

	ms := NewMailerService(&MailerConfig{
		Endpoint: server.URL,
		APIKey:   "test-key",
		Sender:   "noreply@company.com",
	})

	err := ms.SendStatusUpdate(testPayload())
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "juan@company.com", got.To)
	assert.Equal(t, "noreply@company.com", got.From)
	assert.True(t, strings.HasPrefix(got.Subject, "Task Status Update:"))
	assert.Contains(t, got.HTML, "MMR/20250901/000007")
}

func TestSendStatusUpdateSkipsMissingEmail(t *testing.T) {
	utils.InitLogger()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	ms := NewMailerService(&MailerConfig{Endpoint: server.URL, Sender: "noreply@company.com"})

	payload := testPayload()
	payload.EmployeeEmail = ""
	err := ms.SendStatusUpdate(payload)

	// No address means no attempt and no error.
	assert.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestSendStatusUpdateTransportError(t *testing.T) {
	utils.InitLogger()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream unavailable"}`))
	}))
	defer server.Close()

	ms := NewMailerService(&MailerConfig{Endpoint: server.URL, Sender: "noreply@company.com"})

	err := ms.SendStatusUpdate(testPayload())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendStatusUpdateHasNoDeduplication(t *testing.T) {
	utils.InitLogger()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"id":"msg-123"}`))
	}))
	defer server.Close()

	ms := NewMailerService(&MailerConfig{Endpoint: server.URL, Sender: "noreply@company.com"})

	// Sending the same notification twice delivers two emails. That is
	// the accepted contract, not a bug.
	assert.NoError(t, ms.SendStatusUpdate(testPayload()))
	assert.NoError(t, ms.SendStatusUpdate(testPayload()))
	assert.Equal(t, 2, calls)
}
