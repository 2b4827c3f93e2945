package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"team_polls/configs"
	"team_polls/internal/db/models"
	"team_polls/internal/polls"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

const (
	EventPollOpened = "poll_opened"
	EventPollClosed = "poll_closed"
)

type pollEvent struct {
	Event      string            `json:"event"`
	PollID     string            `json:"poll_id"`
	TeamID     string            `json:"team_id"`
	ChannelID  string            `json:"channel_id"`
	Question   string            `json:"question"`
	BallotKind models.BallotKind `json:"ballot_kind"`
	Status     models.PollStatus `json:"status"`
	Results    *polls.Results    `json:"results,omitempty"`
	SentAt     string            `json:"sent_at"`
}

type resultsWebhook struct {
	client   *http.Client
	url      string
	attempts uint
	delay    time.Duration
	logger   *zap.SugaredLogger
}

// NewResultsWebhook exports poll lifecycle events as JSON POST requests.
func NewResultsWebhook(config configs.Webhook, logger *zap.SugaredLogger) polls.Notifier {
	return &resultsWebhook{
		client:   &http.Client{Timeout: config.Timeout},
		url:      config.URL,
		attempts: config.Attempts,
		delay:    time.Second,
		logger:   logger,
	}
}

func (w *resultsWebhook) PollOpened(ctx context.Context, poll *models.Poll) error {
	return w.send(ctx, newPollEvent(EventPollOpened, poll, nil))
}

func (w *resultsWebhook) PollClosed(ctx context.Context, poll *models.Poll, results *polls.Results) error {
	return w.send(ctx, newPollEvent(EventPollClosed, poll, results))
}

func newPollEvent(event string, poll *models.Poll, results *polls.Results) pollEvent {
	return pollEvent{
		Event:      event,
		PollID:     poll.ID,
		TeamID:     poll.TeamID,
		ChannelID:  poll.ChannelID,
		Question:   poll.Question,
		BallotKind: poll.BallotKind,
		Status:     poll.Status,
		Results:    results,
		SentAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

func (w *resultsWebhook) send(ctx context.Context, event pollEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return retry.Do(
		func() error {
			return w.post(ctx, jsonData)
		},
		retry.Context(ctx),
		retry.Attempts(w.attempts),
		retry.Delay(w.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			w.logger.Warnw("webhook delivery failed, retrying", "attempt", n+1, "error", err, "poll_id", event.PollID)
		}),
	)
}

func (w *resultsWebhook) post(ctx context.Context, jsonData []byte) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return retry.Unrecoverable(err)
	}

	request.Header.Add("Content-Type", "application/json; charset=utf-8")

	response, err := w.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	_, _ = io.Copy(io.Discard, response.Body)

	switch {
	case response.StatusCode >= 500 || response.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("webhook responded with %d", response.StatusCode)
	case response.StatusCode >= 400:
		return retry.Unrecoverable(fmt.Errorf("webhook rejected event with %d", response.StatusCode))
	}

	return nil
}
