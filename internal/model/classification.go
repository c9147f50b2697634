package model

// BinType is the municipal bin a classified item belongs in.
type BinType string

// Bin type constants, matching the tag vocabulary the classification service
// is prompted with.
const (
	BinRed    BinType = "red"
	BinYellow BinType = "yellow"
	BinGreen  BinType = "green"
	BinPurple BinType = "purple"
	BinEwaste BinType = "ewaste"
	BinOther  BinType = "other"
	BinNone   BinType = "none"
)

// ParseBinType maps a raw tag onto a bin type. Unknown tags resolve to
// BinNone, which then goes through the keyword fallback.
func ParseBinType(tag string) BinType {
	switch BinType(tag) {
	case BinRed, BinYellow, BinGreen, BinPurple, BinEwaste, BinOther, BinNone:
		return BinType(tag)
	default:
		return BinNone
	}
}

// DisplayName returns the label shown to the user for the bin.
func (b BinType) DisplayName() string {
	switch b {
	case BinRed:
		return "Red Bin (General Waste)"
	case BinYellow:
		return "Yellow Bin (Mixed Recycling)"
	case BinGreen:
		return "Green Bin (FOGO)"
	case BinPurple:
		return "Purple Bin (Glass)"
	case BinEwaste:
		return "E-Waste Collection"
	case BinOther:
		return "Transfer Station"
	default:
		return "No Bin"
	}
}

// Color returns the bin's accent color as a hex string for terminal
// rendering.
func (b BinType) Color() string {
	switch b {
	case BinRed:
		return "#E74C3C"
	case BinYellow:
		return "#F1C40F"
	case BinGreen:
		return "#27AE60"
	case BinPurple:
		return "#9B59B6"
	case BinEwaste:
		return "#2DA1E2"
	default:
		return "#666666"
	}
}

// RawClassification is the decoded but unresolved payload extracted from the
// classification service's response text.
type RawClassification struct {
	ItemName     string  `json:"itemName"`
	BinTag       string  `json:"binType"`
	Description  string  `json:"description"`
	Instructions string  `json:"instructions"`
	Confidence   float64 `json:"confidence"`
}

// ClassificationResult is the final typed result shown to the user.
type ClassificationResult struct {
	ItemName     string
	Bin          BinType
	Description  string
	Instructions string
	Confidence   float64
}

// Unresolvable reports whether the item could not be assigned to any bin even
// after the keyword fallback. This is a legitimate terminal outcome, not an
// error; the presentation layer prompts the user to refine their input.
func (r ClassificationResult) Unresolvable() bool {
	return r.Bin == BinNone
}
