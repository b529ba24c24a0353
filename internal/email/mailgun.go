// Package email sends transactional email through the Mailgun messages API.
package email

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.mailgun.net/v3"
	defaultTimeout = 30 * time.Second
)

// APIResponseError is returned when Mailgun answers with a non-2xx status.
type APIResponseError struct {
	StatusCode int
	Body       string
}

func (e *APIResponseError) Error() string {
	return fmt.Sprintf("mailgun request failed with status %d: %s", e.StatusCode, e.Body)
}

// Mailer delivers outbound email. Implemented by the Mailgun client; tests
// substitute a recorder.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailgunClient interfaces with the Mailgun messages API.
type MailgunClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	domain     string
	sender     string
}

// NewMailgunClient creates a new Mailgun API client for the given domain.
func NewMailgunClient(apiKey, domain, sender string) *MailgunClient {
	return &MailgunClient{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		domain:  domain,
		sender:  sender,
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *MailgunClient) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// Send delivers a plain-text email via the messages endpoint.
func (c *MailgunClient) Send(ctx context.Context, to, subject, body string) error {
	form := url.Values{}
	form.Set("from", c.sender)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := fmt.Sprintf("%s/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("api", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIResponseError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return nil
}

// SendRegistrationEmail sends the post-registration confirmation email.
func SendRegistrationEmail(ctx context.Context, mailer Mailer, to, confirmationURL string) error {
	body := fmt.Sprintf(
		"Hi %s! You have successfully signed up for our service.\n"+
			"Please confirm your email by clicking on this link: %s",
		to, confirmationURL,
	)
	return mailer.Send(ctx, to, "Please confirm your email", body)
}
