package charts

import (
	"testing"

	"gameshelf/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func finishedWithScores(scores ...int) []models.Finished {
	games := make([]models.Finished, 0, len(scores))
	for _, score := range scores {
		games = append(games, models.Finished{Score: score})
	}
	return games
}

func TestScores(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		expected []int
	}{
		{"empty", nil, []int{0, 0, 0, 0, 0}},
		{"unrated excluded", []int{0, 3, 3, 5}, []int{0, 0, 2, 0, 1}},
		{"every bucket", []int{1, 2, 3, 4, 5, 5}, []int{1, 1, 1, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := Scores(finishedWithScores(tt.scores...))
			assert.Equal(t, tt.expected, series.Values)
			assert.Equal(t, []string{"★", "★★", "★★★", "★★★★", "★★★★★"}, series.Labels)
		})
	}
}

func TestInterest(t *testing.T) {
	t.Run("buckets present with zeros", func(t *testing.T) {
		series := Interest(nil)
		assert.Equal(t, []string{"Low", "Medium", "High"}, series.Labels)
		assert.Equal(t, []int{0, 0, 0}, series.Values)
	})

	t.Run("counts per level", func(t *testing.T) {
		series := Interest([]models.WantToPlay{
			{InterestLevel: models.InterestHigh},
			{InterestLevel: models.InterestHigh},
			{InterestLevel: models.InterestLow},
		})
		assert.Equal(t, []int{1, 0, 2}, series.Values)
	})

	t.Run("unknown levels appended", func(t *testing.T) {
		series := Interest([]models.WantToPlay{{InterestLevel: "Obsessed"}})
		assert.Equal(t, []string{"Low", "Medium", "High", "Obsessed"}, series.Labels)
		assert.Equal(t, []int{0, 0, 0, 1}, series.Values)
	})
}

func TestReasons_FirstSeenOrder(t *testing.T) {
	series := Reasons([]models.Abandoned{
		{Reason: models.ReasonTooLong},
		{Reason: models.ReasonBoring},
		{Reason: models.ReasonTooLong},
		{Reason: "Servers shut down"},
	})

	assert.Equal(t, []string{"Too Long", "Boring", "Servers shut down"}, series.Labels)
	assert.Equal(t, []int{2, 1, 1}, series.Values)

	empty := Reasons(nil)
	assert.Empty(t, empty.Labels)
	assert.Empty(t, empty.Values)
}

func TestStats(t *testing.T) {
	hours := func(value string) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.RequireFromString(value))
	}

	stats := Stats(nil)
	assert.Equal(t, 0, stats.Total)
	assert.True(t, stats.AverageHours.IsZero())

	stats = Stats([]models.Finished{
		{HoursSpent: hours("10")},
		{HoursSpent: hours("5.5")},
		{},
	})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, "5.2", stats.AverageHours.String())
}

func TestCompute(t *testing.T) {
	charts := Compute(models.EmptyState())

	assert.Equal(t, []int{0, 0, 0}, charts.Interest.Values)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, charts.Scores.Values)
	assert.Empty(t, charts.Reasons.Values)
	assert.Equal(t, 0, charts.Finished.Total)
}
