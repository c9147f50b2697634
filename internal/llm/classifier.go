package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/greenloop/kerbside/internal/bins"
	"github.com/greenloop/kerbside/internal/model"
	"golang.org/x/time/rate"
)

// System prompts embedding the local waste-sorting taxonomy. The tag
// vocabulary here must stay in sync with model.ParseBinType.
const (
	systemPromptImage = `You are a waste classification expert for Ballarat, Victoria, Australia. Analyze the provided image and classify the waste item according to Ballarat's recycling standards. BIN TYPES: red (General waste), yellow (Paper and plastic recycling), green (Food waste and green waste), purple (Glass recycling), ewaste (E-waste), other (Take to transfer station). Respond with a JSON object: {"itemName": "exact item name", "binType": "red|yellow|green|purple|ewaste|other", "description": "brief description", "instructions": "specific disposal instructions", "confidence": 0.99}`

	systemPromptText = `You are a waste classification expert for Ballarat, Victoria, Australia. Analyze the provided text description and classify the waste item according to Ballarat's recycling standards. BIN TYPES: red (General waste), yellow (Paper and plastic recycling), green (Food waste and green waste), purple (Glass recycling), ewaste (E-waste), other (Take to transfer station). Respond with a JSON object: {"itemName": "exact item name", "binType": "red|yellow|green|purple|ewaste|other", "description": "brief description", "instructions": "specific disposal instructions", "confidence": 0.95}`

	userPromptImage = "Please analyze this waste item and provide classification according to Ballarat recycling standards."
	userPromptText  = "Please analyze this waste item description and provide classification according to Ballarat recycling standards: %s"
)

// Classifier orchestrates one classification flow: request to the service,
// response parsing, and bin-type fallback resolution. It performs no retries;
// a failure is reported once and the caller decides what to do with it.
type Classifier struct {
	client  Client
	cache   *resultCache
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClassifier creates a classifier backed by the OpenAI API.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := newOpenAIClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create classification client: %w", err)
	}
	return NewClassifierWithClient(client, cfg, logger), nil
}

// NewClassifierWithClient creates a classifier around an existing client.
func NewClassifierWithClient(client Client, cfg Config, logger *slog.Logger) *Classifier {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}

	return &Classifier{
		client:  client,
		cache:   newResultCache(cfg.CacheTTL),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		logger:  logger,
	}
}

// ClassifyText classifies a free-text item description.
func (c *Classifier) ClassifyText(ctx context.Context, text string) (model.ClassificationResult, error) {
	if text == "" {
		return model.ClassificationResult{}, fmt.Errorf("%w: empty description", ErrRequest)
	}

	key := cacheKey("text", []byte(text))
	if result, found := c.cache.get(key); found {
		c.logger.Debug("classification cache hit", "input", "text")
		return result, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := c.client.CompleteText(ctx, systemPromptText, fmt.Sprintf(userPromptText, text))
	if err != nil {
		return model.ClassificationResult{}, err
	}

	return c.finish(key, body)
}

// ClassifyImage classifies a photographed item from its JPEG bytes.
func (c *Classifier) ClassifyImage(ctx context.Context, jpeg []byte) (model.ClassificationResult, error) {
	key := cacheKey("image", jpeg)
	if result, found := c.cache.get(key); found {
		c.logger.Debug("classification cache hit", "input", "image")
		return result, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := c.client.CompleteImage(ctx, systemPromptImage, userPromptImage, jpeg)
	if err != nil {
		return model.ClassificationResult{}, err
	}

	return c.finish(key, body)
}

// finish runs the shared tail of both flows: parse, resolve, cache, log.
func (c *Classifier) finish(key, body string) (model.ClassificationResult, error) {
	raw, err := ParseResponse(body)
	if err != nil {
		c.logger.Warn("unparseable classification response", "error", err)
		return model.ClassificationResult{}, err
	}

	result := bins.Resolve(raw)

	if result.Confidence < 0 || result.Confidence > 1 {
		// Passed through unclamped; the service is prompted for [0,1] but
		// nothing enforces it.
		c.logger.Warn("confidence outside expected range",
			"item", result.ItemName,
			"confidence", result.Confidence)
	}

	c.cache.set(key, result)

	c.logger.Info("item classified",
		"item", result.ItemName,
		"bin", result.Bin,
		"confidence", result.Confidence,
		"fallback_applied", model.ParseBinType(raw.BinTag) == model.BinNone && result.Bin != model.BinNone)

	return result, nil
}

// Close releases cache resources.
func (c *Classifier) Close() error {
	if c.cache != nil {
		c.cache.Close()
	}
	return nil
}

func cacheKey(kind string, input []byte) string {
	sum := sha256.Sum256(input)
	return kind + ":" + hex.EncodeToString(sum[:])
}
