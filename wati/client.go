// wati/client.go
package wati

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"event-registration-system/utils"
)

// TemplateParameter is one {{placeholder}} substitution in a WATI-approved
// message template.
type TemplateParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Recipient is one target of a bulk template send.
type Recipient struct {
	UID    string `json:"uid"`
	Mobile string `json:"mobile"`
}

// BulkResult reports the provider-side outcome of a batch send.
type BulkResult struct {
	TotalSent   int
	TotalFailed int
}

// Client talks to the WATI template-messaging API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient() (*Client, error) {
	endpoint := os.Getenv("WATI_API_ENDPOINT")
	token := os.Getenv("WATI_API_TOKEN")
	if endpoint == "" || token == "" {
		return nil, fmt.Errorf("WATI_API_ENDPOINT and WATI_API_TOKEN environment variables are required")
	}
	// Handle both full URLs and domain-only endpoints
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "https://" + endpoint
	}
	return &Client{
		BaseURL:    strings.TrimRight(endpoint, "/"),
		Token:      token,
		HTTPClient: utils.HTTPClient,
	}, nil
}

// authHeader returns the Authorization value, tolerating tokens that
// already carry the Bearer prefix.
func (c *Client) authHeader() string {
	if strings.HasPrefix(c.Token, "Bearer ") {
		return c.Token
	}
	return "Bearer " + c.Token
}

func (c *Client) post(ctx context.Context, url string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode WATI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create WATI request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call WATI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("WATI API returned status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// SendTemplateMessage sends one approved template message. The phone number
// is normalized to international digits-only format before the call.
func (c *Client) SendTemplateMessage(ctx context.Context, whatsappNumber, templateName, broadcastName string, parameters []TemplateParameter) error {
	phone := utils.FormatPhone(whatsappNumber)
	url := fmt.Sprintf("%s/api/v1/sendTemplateMessage?whatsappNumber=%s", c.BaseURL, phone)

	body := map[string]interface{}{
		"template_name":  templateName,
		"broadcast_name": broadcastName,
	}
	if len(parameters) > 0 {
		body["parameters"] = parameters
	}

	log.Printf("Sending WATI WhatsApp message: phone=%s template=%s", phone, templateName)
	return c.post(ctx, url, body)
}

// SendRegistrationMessage sends the ticket template for one registrant.
// The template expects {{name}} in the body text and {{image}} for the
// ticket.
func (c *Client) SendRegistrationMessage(ctx context.Context, name, mobile, ticketImageURL string) error {
	return c.SendTemplateMessage(ctx, mobile, "registration_ticket", "Registration Notification", []TemplateParameter{
		{Name: "name", Value: name},
		{Name: "image", Value: ticketImageURL},
	})
}

// SendBulkRSVP sends the RSVP template to every recipient in one
// provider-side batch call. Callers must pre-filter recipients missing a
// uid or mobile number.
func (c *Client) SendBulkRSVP(ctx context.Context, recipients []Recipient) (BulkResult, error) {
	url := fmt.Sprintf("%s/api/v1/sendTemplateMessages", c.BaseURL)

	receivers := make([]map[string]interface{}, 0, len(recipients))
	for _, r := range recipients {
		receivers = append(receivers, map[string]interface{}{
			"whatsappNumber": utils.FormatPhone(r.Mobile),
		})
	}

	body := map[string]interface{}{
		"template_name":  "rsvp_reminder",
		"broadcast_name": "RSVP Reminder",
		"receivers":      receivers,
	}

	log.Printf("Sending bulk RSVP WhatsApp to %d recipients...", len(recipients))
	if err := c.post(ctx, url, body); err != nil {
		return BulkResult{TotalFailed: len(recipients)}, err
	}
	return BulkResult{TotalSent: len(recipients)}, nil
}
