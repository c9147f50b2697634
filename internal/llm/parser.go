package llm

import (
	"encoding/json"
	"fmt"

	"github.com/greenloop/kerbside/internal/model"
)

// ParseResponse extracts and validates the classification payload from a raw
// response body. All five fields are required; any absent or mistyped field
// rejects the whole response. The caller sees every rejection as the single
// ErrInvalidResponse kind.
func ParseResponse(raw string) (model.RawClassification, error) {
	candidate, err := ExtractObject(raw)
	if err != nil {
		return model.RawClassification{}, err
	}

	// Pointer fields distinguish "absent" from zero values.
	var payload struct {
		ItemName     *string  `json:"itemName"`
		BinType      *string  `json:"binType"`
		Description  *string  `json:"description"`
		Instructions *string  `json:"instructions"`
		Confidence   *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return model.RawClassification{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	missing := ""
	switch {
	case payload.ItemName == nil:
		missing = "itemName"
	case payload.BinType == nil:
		missing = "binType"
	case payload.Description == nil:
		missing = "description"
	case payload.Instructions == nil:
		missing = "instructions"
	case payload.Confidence == nil:
		missing = "confidence"
	}
	if missing != "" {
		return model.RawClassification{}, fmt.Errorf("%w: missing field %q", ErrInvalidResponse, missing)
	}

	return model.RawClassification{
		ItemName:     *payload.ItemName,
		BinTag:       *payload.BinType,
		Description:  *payload.Description,
		Instructions: *payload.Instructions,
		Confidence:   *payload.Confidence,
	}, nil
}
