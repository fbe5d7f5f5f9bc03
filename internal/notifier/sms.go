package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// SMSDispatcher invokes the hosted send-sms function over HTTP.
type SMSDispatcher struct {
	client   *http.Client
	endpoint string
}

type smsRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// NewSMSDispatcher authenticates calls with apiKey as a bearer token when it is set.
func NewSMSDispatcher(endpoint, apiKey string, timeout time.Duration) *SMSDispatcher {
	client := &http.Client{}
	if apiKey != "" {
		client = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: apiKey,
			TokenType:   "Bearer",
		}))
	}
	client.Timeout = timeout

	return &SMSDispatcher{client: client, endpoint: endpoint}
}

func (d *SMSDispatcher) Dispatch(ctx context.Context, to, message string) error {
	payload, err := json.Marshal(smsRequest{To: to, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send-sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send-sms returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
