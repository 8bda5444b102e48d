package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// NewPostHogClient creates a PostHog analytics client. It returns nil when
// the API key is empty, so callers can skip event capture in development.
func NewPostHogClient(apiKey string, logger *slog.Logger) posthog.Client {
	if apiKey == "" {
		logger.Info("PostHog API key not set, analytics disabled")
		return nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://us.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to create PostHog client", slog.String("error", err.Error()))
		return nil
	}
	return client
}

// CaptureEvent sends an analytics event, tolerating a nil client.
func CaptureEvent(client posthog.Client, distinctID, event string, properties map[string]interface{}) {
	if client == nil {
		return
	}
	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	_ = client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	})
}
