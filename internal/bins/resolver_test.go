package bins

import (
	"testing"

	"github.com/greenloop/kerbside/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestResolveConcreteTagUnchanged(t *testing.T) {
	raw := model.RawClassification{
		ItemName:     "Aluminium can",
		BinTag:       "yellow",
		Description:  "A drink can",
		Instructions: "Place in the red bin", // contradicts the tag on purpose
		Confidence:   0.93,
	}

	got := Resolve(raw)
	assert.Equal(t, model.BinYellow, got.Bin)
	assert.Equal(t, "Aluminium can", got.ItemName)
	assert.InDelta(t, 0.93, got.Confidence, 0.0001)
}

func TestResolveFallback(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		want         model.BinType
	}{
		{"green bin keyword", "Place in the green bin with other garden waste", model.BinGreen},
		{"organic keyword", "Compost with organic material", model.BinGreen},
		{"recycling keyword", "Put it out with your recycling", model.BinYellow},
		{"general waste keyword", "Dispose of as general waste", model.BinRed},
		{"landfill keyword", "This goes to landfill", model.BinRed},
		{"glass keyword", "Glass jars are collected separately", model.BinPurple},
		{"battery keyword", "Remove the battery before disposal", model.BinEwaste},
		{"phone keyword", "Old phone chargers are accepted at drop-off points", model.BinEwaste},
		{"transfer station keyword", "Take this item to the transfer station", model.BinOther},
		{"special collection keyword", "Book a special collection with council", model.BinOther},
		{"no keyword stays none", "Consult your local council for advice", model.BinNone},
		{"case insensitive", "PLACE IN THE GREEN BIN", model.BinGreen},
		{"green outranks recycling", "Garden waste, not recycling", model.BinGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(model.RawClassification{
				BinTag:       "none",
				Instructions: tt.instructions,
			})
			assert.Equal(t, tt.want, got.Bin)
		})
	}
}

func TestResolveUnknownTagFallsBack(t *testing.T) {
	got := Resolve(model.RawClassification{
		BinTag:       "chartreuse",
		Instructions: "Place in the yellow bin",
	})
	assert.Equal(t, model.BinYellow, got.Bin)
}

func TestUnresolvableResult(t *testing.T) {
	got := Resolve(model.RawClassification{BinTag: "none", Instructions: "no hints here"})
	assert.True(t, got.Unresolvable())

	got = Resolve(model.RawClassification{BinTag: "red"})
	assert.False(t, got.Unresolvable())
}
