package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emirduygulu/wanderland-api/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title    string
		extract  string
		category string
		typ      types.ResultType
	}{
		{"Sultanahmet Camii", "Istanbul'daki tarihi cami", "mosque", types.ResultTypeLandmark},
		{"Galata Kulesi", "A historic tower in Istanbul", "tower", types.ResultTypeLandmark},
		{"Tower Bridge", "A bridge in London", "tower", types.ResultTypeLandmark},
		{"Anitkabir", "The memorial of Ataturk", "monument", types.ResultTypeMonument},
		{"Central Park", "An urban park in Manhattan", "park", types.ResultTypePlace},
		{"Efes", "Ancient ruins near Selcuk", "ancient", types.ResultTypeMonument},
		{"Istanbul", "The largest city in Turkey", "city", types.ResultTypeCity},
		{"Some Place", "No category keyword here", "landmark", types.ResultTypeLandmark},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			category, typ := Classify(tt.title, tt.extract)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.typ, typ)
		})
	}
}

func TestClassifyOrderingMosqueBeforeTower(t *testing.T) {
	// "cami" outranks "kule" when both keywords appear.
	category, _ := Classify("Cami ve Kule", "bir cami ve bir kule")
	assert.Equal(t, "mosque", category)
}

func TestDeriveRatingBounds(t *testing.T) {
	// Every bonus at once still caps at 5.0.
	assert.Equal(t, 5.0, DeriveRating(100, 400, true, true, true))

	// Minimal input stays at the 4.0 base.
	assert.Equal(t, 4.0, DeriveRating(0, 0, false, false, false))

	rating := DeriveRating(60, 300, true, false, true)
	assert.GreaterOrEqual(t, rating, 4.0)
	assert.LessOrEqual(t, rating, 5.0)
}

func TestDerivePopularityBounds(t *testing.T) {
	assert.Equal(t, 100, DerivePopularity(100, 5000, true))
	assert.Equal(t, 0, DerivePopularity(0, 0, false))
	assert.Equal(t, 30+25+10, DerivePopularity(25, 300, true))
}
