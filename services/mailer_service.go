package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bugemco/multimedia-request-hub/models"
	"github.com/bugemco/multimedia-request-hub/utils"
)

// MailerConfig holds the outbound email endpoint configuration. The
// endpoint is a resend-style API taking {from,to,subject,html}.
type MailerConfig struct {
	Endpoint string
	APIKey   string
	Sender   string
}

// MailerService delivers status-update notifications. Delivery is
// best-effort: callers log a returned error and move on, the status
// change it describes is already committed.
type MailerService struct {
	config     *MailerConfig
	httpClient *http.Client
}

var (
	mailerService *MailerService
	mailerOnce    sync.Once
)

// GetMailerService returns the singleton instance configured from the
// environment.
func GetMailerService() *MailerService {
	mailerOnce.Do(func() {
		endpoint := os.Getenv("MAIL_ENDPOINT")
		if endpoint == "" {
			endpoint = "https://api.resend.com/emails"
		}
		sender := os.Getenv("MAIL_SENDER")
		if sender == "" {
			sender = "onboarding@resend.dev"
		}
		mailerService = NewMailerService(&MailerConfig{
			Endpoint: endpoint,
			APIKey:   os.Getenv("MAIL_API_KEY"),
			Sender:   sender,
		})
	})
	return mailerService
}

func NewMailerService(config *MailerConfig) *MailerService {
	return &MailerService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ValidateConfig checks that the mailer can actually deliver.
func (ms *MailerService) ValidateConfig() error {
	if ms.config.Endpoint == "" {
		return fmt.Errorf("mail endpoint is not configured")
	}
	if ms.config.Sender == "" {
		return fmt.Errorf("mail sender is not configured")
	}
	return nil
}

// StatusUpdateEmail describes a committed status change.
type StatusUpdateEmail struct {
	TaskCode      string
	EmployeeEmail string
	EmployeeName  string
	Status        models.TaskStatus
	TaskType      models.TaskType
	Description   string
	Deadline      time.Time
}

var statusUpdateTmpl = template.Must(template.New("statusUpdate").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background-color: #006633; color: white; padding: 20px; border-radius: 8px 8px 0 0; text-align: center;">
    <h2 style="margin: 0;">Task Status Update</h2>
  </div>
  <div style="border: 1px solid #ddd; padding: 20px; border-radius: 0 0 8px 8px;">
    <p>Dear {{.EmployeeName}},</p>
    <p>Your multimedia request has been updated. Please see the details below:</p>
    <div style="background-color: #f5f5f5; border-left: 4px solid #006633; padding: 16px; margin: 16px 0; border-radius: 4px;">
      <p style="margin: 8px 0;"><strong>Task ID:</strong> {{.TaskCode}}</p>
      <p style="margin: 8px 0;"><strong>Task Type:</strong> {{.TaskTypeLabel}}</p>
      <p style="margin: 8px 0;"><strong>Current Status:</strong> <span style="color: #006633; font-weight: bold; font-size: 16px;">{{.StatusLabel}}</span></p>
      <p style="margin: 8px 0;"><strong>Description:</strong> {{.Description}}</p>
      <p style="margin: 8px 0;"><strong>Target Completion Date:</strong> {{.DeadlineLong}}</p>
    </div>
    <p style="color: #666; font-size: 14px; margin-top: 20px;">If you have any questions about your request, please contact the admin team.</p>
    <p style="color: #999; font-size: 12px; margin-top: 20px; border-top: 1px solid #ddd; padding-top: 20px;">
      &copy; 2025 Multimedia Request Management System. All rights reserved.
    </p>
  </div>
</div>
`))

// ComposeStatusUpdate renders the notification subject and HTML body.
func ComposeStatusUpdate(p StatusUpdateEmail) (subject, html string, err error) {
	subject = fmt.Sprintf("Task Status Update: %s - %s", p.TaskCode, p.Status.Label())

	var buf bytes.Buffer
	err = statusUpdateTmpl.Execute(&buf, map[string]string{
		"EmployeeName":  p.EmployeeName,
		"TaskCode":      p.TaskCode,
		"TaskTypeLabel": p.TaskType.Label(),
		"StatusLabel":   p.Status.Label(),
		"Description":   p.Description,
		"DeadlineLong":  p.Deadline.Format("Monday, January 2, 2006"),
	})
	if err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}

type sendEmailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type sendEmailResponse struct {
	ID      string `json:"id"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendStatusUpdate composes and delivers the notification. A missing
// employee email short-circuits without error. There is no retry and no
// deduplication; calling twice sends two emails.
func (ms *MailerService) SendStatusUpdate(p StatusUpdateEmail) error {
	if p.EmployeeEmail == "" {
		utils.InfoLogger.Printf("No email address for %s, skipping notification", p.TaskCode)
		return nil
	}

	subject, html, err := ComposeStatusUpdate(p)
	if err != nil {
		return fmt.Errorf("compose notification: %w", err)
	}

	body, err := json.Marshal(sendEmailRequest{
		From:    ms.config.Sender,
		To:      p.EmployeeEmail,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, ms.config.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if ms.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+ms.config.APIKey)
	}

	resp, err := ms.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	var result sendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("decode email response: %w", err)
	}

	if resp.StatusCode >= 300 {
		msg := result.Error
		if msg == "" {
			msg = result.Message
		}
		return fmt.Errorf("email endpoint returned %d: %s", resp.StatusCode, msg)
	}

	utils.InfoLogger.Printf("Status notification sent to %s (message id %s)", p.EmployeeEmail, result.ID)
	return nil
}
