package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/greenloop/kerbside/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a scriptable Client implementation for tests.
type mockClient struct {
	response string
	err      error
	calls    int
	mu       sync.Mutex
}

func (m *mockClient) CompleteText(_ context.Context, _, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.response, m.err
}

func (m *mockClient) CompleteImage(_ context.Context, _, _ string, _ []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.response, m.err
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestClassifier(t *testing.T, client Client) *Classifier {
	t.Helper()
	c := NewClassifierWithClient(client, Config{RequestsPerMinute: 6000}, slog.Default())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

const validBody = `{"itemName":"Banana peel","binType":"green","description":"Food scrap","instructions":"Place in the green bin","confidence":0.97}`

func TestClassifyText(t *testing.T) {
	client := &mockClient{response: "Here you go: " + validBody + " Cheers!"}
	c := newTestClassifier(t, client)

	got, err := c.ClassifyText(context.Background(), "banana peel")
	require.NoError(t, err)
	assert.Equal(t, "Banana peel", got.ItemName)
	assert.Equal(t, model.BinGreen, got.Bin)
	assert.False(t, got.Unresolvable())
}

func TestClassifyTextCachesResult(t *testing.T) {
	client := &mockClient{response: validBody}
	c := newTestClassifier(t, client)

	_, err := c.ClassifyText(context.Background(), "banana peel")
	require.NoError(t, err)
	_, err = c.ClassifyText(context.Background(), "banana peel")
	require.NoError(t, err)

	assert.Equal(t, 1, client.callCount())
}

func TestClassifyTextFallbackApplied(t *testing.T) {
	client := &mockClient{response: `{"itemName":"Lawn clippings","binType":"none","description":"d","instructions":"Place in the green bin with other garden waste","confidence":0.6}`}
	c := newTestClassifier(t, client)

	got, err := c.ClassifyText(context.Background(), "lawn clippings")
	require.NoError(t, err)
	assert.Equal(t, model.BinGreen, got.Bin)
}

func TestClassifyTextUnresolvable(t *testing.T) {
	client := &mockClient{response: `{"itemName":"Mystery object","binType":"none","description":"d","instructions":"Unclear","confidence":0.2}`}
	c := newTestClassifier(t, client)

	got, err := c.ClassifyText(context.Background(), "mystery object")
	require.NoError(t, err)
	assert.True(t, got.Unresolvable())
}

func TestClassifyErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		response  string
		wantIs    error
	}{
		{
			name:      "network failure",
			clientErr: fmt.Errorf("%w: connection refused", ErrNetwork),
			wantIs:    ErrNetwork,
		},
		{
			name:     "invalid response body",
			response: "no json in sight",
			wantIs:   ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{response: tt.response, err: tt.clientErr}
			c := newTestClassifier(t, client)

			_, err := c.ClassifyText(context.Background(), "something")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantIs))
		})
	}
}

func TestClassifyStatusError(t *testing.T) {
	client := &mockClient{err: &StatusError{Code: 429, Body: "rate limited"}}
	c := newTestClassifier(t, client)

	_, err := c.ClassifyText(context.Background(), "something")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 429, statusErr.Code)
}

func TestClassifyTextEmptyInput(t *testing.T) {
	c := newTestClassifier(t, &mockClient{})

	_, err := c.ClassifyText(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequest))
}

func TestClassifyImageRejectsOversized(t *testing.T) {
	client, err := newOpenAIClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	c := NewClassifierWithClient(client, Config{RequestsPerMinute: 6000}, slog.Default())
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.ClassifyImage(context.Background(), make([]byte, maxImageBytes+1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequest))
}

func TestClassifyCancelledContext(t *testing.T) {
	client := &mockClient{response: validBody}
	c := newTestClassifier(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ClassifyText(ctx, "banana peel")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
