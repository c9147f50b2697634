// Package bins resolves a raw classification into the final bin category,
// applying a keyword fallback when the service returned no concrete bin.
package bins

import (
	"strings"

	"github.com/greenloop/kerbside/internal/model"
)

// fallbackRule pairs a bin with the instruction keywords that indicate it.
type fallbackRule struct {
	bin      model.BinType
	keywords []string
}

// fallbackRules is the fixed decision table scanned when the primary tag is
// the none sentinel. Order matters: the first rule with a matching keyword
// wins.
var fallbackRules = []fallbackRule{
	{model.BinGreen, []string{"green bin", "garden waste", "organic"}},
	{model.BinYellow, []string{"yellow bin", "recycling", "recyclable"}},
	{model.BinRed, []string{"red bin", "general waste", "landfill"}},
	{model.BinPurple, []string{"purple bin", "glass"}},
	{model.BinEwaste, []string{"battery", "electronic", "e-waste", "computer", "phone", "appliance"}},
	{model.BinOther, []string{"transfer station", "special collection"}},
}

// Resolve turns a decoded classification into the final typed result. A
// concrete tag is used unchanged, even if the instructions text contradicts
// it; only the none sentinel triggers the keyword fallback. BinNone survives
// resolution when no keyword matches, meaning the item could not be
// classified.
func Resolve(raw model.RawClassification) model.ClassificationResult {
	bin := model.ParseBinType(raw.BinTag)
	if bin == model.BinNone {
		bin = fallbackBin(raw.Instructions)
	}

	return model.ClassificationResult{
		ItemName:     raw.ItemName,
		Bin:          bin,
		Description:  raw.Description,
		Instructions: raw.Instructions,
		Confidence:   raw.Confidence,
	}
}

// fallbackBin scans the instructions text for category-indicative keywords in
// priority order.
func fallbackBin(instructions string) model.BinType {
	text := strings.ToLower(instructions)
	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.bin
			}
		}
	}
	return model.BinNone
}
