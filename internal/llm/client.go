package llm

import (
	"context"
	"time"
)

// Client defines the interface to the vision-capable chat model that performs
// waste classification. Implementations return the raw text body of the
// model's reply; parsing belongs to the classifier.
type Client interface {
	CompleteText(ctx context.Context, system, user string) (string, error)
	CompleteImage(ctx context.Context, system, user string, jpeg []byte) (string, error)
}

// Config holds configuration for the classification service client.
type Config struct {
	APIKey            string
	Model             string
	Temperature       float64
	MaxTokens         int
	RequestsPerMinute int
	CacheTTL          time.Duration
}
