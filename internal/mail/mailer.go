package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Xenn-00/fitout-meister/internal/config"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type Mailer interface {
	SendNotificationEmail(ctx context.Context, to, name string, n *entity.NotificationEntity) error
}

type MailService struct {
	DomainSender string
	MailtrapUrl  string
	MailAPI      string
	client       *http.Client
}

func NewMailer(cfg *config.AppConfig) Mailer {
	client := &http.Client{Timeout: 10 * time.Second}
	if cfg.APP.State == "prod" {
		return &MailService{
			DomainSender: cfg.MAILTRAP.API.MailtrapDomain,
			MailtrapUrl:  cfg.MAILTRAP.API.MailtrapURL,
			MailAPI:      cfg.MAILTRAP.API.MailtrapTokenAPI,
			client:       client,
		}
	}
	return &MailService{
		DomainSender: cfg.MAILTRAP.Sandbox.SandboxDomain,
		MailtrapUrl:  cfg.MAILTRAP.Sandbox.SandboxURL,
		MailAPI:      cfg.MAILTRAP.Sandbox.SandboxAPI,
		client:       client,
	}
}

var categories = map[entity.NotificationType]string{
	entity.NotificationInfo:    "Fitout Notification",
	entity.NotificationSuccess: "Fitout Update",
	entity.NotificationWarning: "Fitout Reminder",
	entity.NotificationError:   "Fitout Alert",
}

// SendNotificationEmail spiegelt eine In-App-Benachrichtigung per E-Mail.
func (m *MailService) SendNotificationEmail(ctx context.Context, to, name string, n *entity.NotificationEntity) error {
	category, ok := categories[n.Type]
	if !ok {
		category = categories[entity.NotificationInfo]
	}

	payload := map[string]any{
		"from": map[string]string{
			"email": m.DomainSender,
			"name":  "Fitout Meister",
		},
		"to": []map[string]string{
			{
				"email": to,
				"name":  name,
			},
		},
		"subject":  n.Title,
		"text":     fmt.Sprintf("Hi %s,\n\n%s\n\nSent %s", name, n.Message, n.CreatedAt.UTC().Format("02 Jan 2006 15:04 MST")),
		"category": category,
	}

	return m.send(ctx, payload)
}

func (m *MailService) send(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Error when marshalling payload body.")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.MailtrapUrl, bytes.NewBuffer(body))
	if err != nil {
		log.Error().Err(err).Msg("Error when building the request.")
		return err
	}

	req.Header.Set("Authorization", "Bearer "+m.MailAPI)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Error when get response from server.")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailtrap send failed: status=%d body=%s",
			resp.StatusCode,
			string(respBody))
	}

	return nil
}
