package onesignal

import (
	e "agendareminder/internal/core/domain/errors"
	"agendareminder/internal/core/domain/logging"
	"agendareminder/internal/core/domain/reminder"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const DEFAULT_API_URL = "https://onesignal.com/api/v1"
const SUBSCRIBED_USERS_SEGMENT = "Subscribed Users"
const LANGUAGE = "pt"
const SEND_AFTER_LAYOUT = "2006-01-02T15:04:05.000Z07:00"

type notificationRequest struct {
	AppID            string            `json:"app_id"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	IncludedSegments []string          `json:"included_segments"`
	URL              string            `json:"url,omitempty"`
	SendAfter        string            `json:"send_after"`
	ExternalID       string            `json:"external_id"`
}

type NotificationResult struct {
	ID         string      `json:"id"`
	Recipients int         `json:"recipients"`
	ExternalID string      `json:"external_id"`
	Errors     interface{} `json:"errors"`
}

// FromJSON decodes body into r. An undecodable body leaves r empty.
func (r *NotificationResult) FromJSON(body []byte) {
	if err := json.Unmarshal(body, r); err != nil {
		*r = NotificationResult{}
	}
}

type Client struct {
	log        logging.Logger
	httpClient http.Client
	endpoint   string
	appID      string
	apiKey     string
	limiter    *rate.Limiter
}

// New returns a client creating notifications under baseURL. A positive
// ratePerSecond paces outgoing requests; zero disables pacing.
func New(
	log logging.Logger,
	baseURL string,
	appID string,
	apiKey string,
	timeout time.Duration,
	ratePerSecond float64,
) (*Client, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid notification service URL: %w", err)
	}
	client := &Client{
		log:        log,
		httpClient: http.Client{Timeout: timeout},
		endpoint:   base.JoinPath("notifications").String(),
		appID:      appID,
		apiKey:     apiKey,
	}
	if ratePerSecond > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}
	return client, nil
}

func (c *Client) Dispatch(ctx context.Context, instruction reminder.Instruction) reminder.Outcome {
	outcome := reminder.NewOutcome(instruction)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			outcome.Err = fmt.Errorf("%w: %v", reminder.ErrDispatchFailed, err)
			return outcome
		}
	}

	var body bytes.Buffer
	encoder := json.NewEncoder(&body)
	err := encoder.Encode(c.newRequest(instruction))
	if err != nil {
		outcome.Err = fmt.Errorf("%w: %v", reminder.ErrDispatchFailed, err)
		return outcome
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		outcome.Err = fmt.Errorf("%w: %v", reminder.ErrDispatchFailed, err)
		return outcome
	}
	request.Header.Set("Content-Type", "application/json; charset=utf-8")
	request.Header.Set("Authorization", "Basic "+c.apiKey)

	c.log.Debug(
		ctx,
		"Submitting reminder to OneSignal.",
		logging.Entry("key", instruction.Key),
		logging.Entry("sendAfter", instruction.SendAt.UTC().Format(SEND_AFTER_LAYOUT)),
	)
	response, err := c.httpClient.Do(request)
	if err != nil {
		logging.Error(ctx, c.log, err, logging.Entry("key", instruction.Key))
		outcome.Err = fmt.Errorf("%w: %v", reminder.ErrDispatchFailed, err)
		return outcome
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		raw = nil
	}
	result := NotificationResult{}
	result.FromJSON(raw)

	outcome.StatusCode = response.StatusCode
	outcome.ResponseBody = string(raw)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		c.log.Error(
			ctx,
			"OneSignal rejected the notification.",
			logging.Entry("key", instruction.Key),
			logging.Entry("status", response.StatusCode),
			logging.Entry("response", outcome.ResponseBody),
		)
		outcome.Err = fmt.Errorf("%w: status %d", reminder.ErrDispatchRejected, response.StatusCode)
		return outcome
	}

	outcome.Success = true
	outcome.NotificationID = result.ID
	return outcome
}

func (c *Client) newRequest(instruction reminder.Instruction) notificationRequest {
	return notificationRequest{
		AppID:            c.appID,
		Headings:         map[string]string{LANGUAGE: instruction.Title},
		Contents:         map[string]string{LANGUAGE: instruction.Message},
		IncludedSegments: []string{SUBSCRIBED_USERS_SEGMENT},
		URL:              instruction.URL,
		SendAfter:        instruction.SendAt.UTC().Format(SEND_AFTER_LAYOUT),
		ExternalID:       instruction.Key,
	}
}
