// Package charts aggregates the collections into the series behind the
// dashboard charts. All functions are pure.
package charts

import (
	"strings"

	"gameshelf/internal/models"

	"github.com/shopspring/decimal"
)

type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type FinishedStats struct {
	Total        int             `json:"total"`
	AverageHours decimal.Decimal `json:"averageHours"`
}

type Charts struct {
	Interest Series        `json:"interest"`
	Scores   Series        `json:"scores"`
	Reasons  Series        `json:"reasons"`
	Finished FinishedStats `json:"finished"`
}

// Sink receives freshly computed charts after every render.
type Sink interface {
	PushCharts(charts Charts)
}

func Compute(state models.State) Charts {
	return Charts{
		Interest: Interest(state.WantToPlay),
		Scores:   Scores(state.Finished),
		Reasons:  Reasons(state.Abandoned),
		Finished: Stats(state.Finished),
	}
}

// Interest counts want-to-play games per interest level. The Low, Medium and
// High buckets are always present in that order; levels outside the enum
// follow in first-seen order.
func Interest(games []models.WantToPlay) Series {
	series := Series{Labels: []string{}, Values: []int{}}
	index := make(map[string]int)

	add := func(label string) int {
		if i, ok := index[label]; ok {
			return i
		}
		index[label] = len(series.Labels)
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, 0)
		return index[label]
	}

	for _, level := range models.InterestLevels {
		add(string(level))
	}
	for _, game := range games {
		series.Values[add(string(game.InterestLevel))]++
	}

	return series
}

// Scores is a five bucket histogram where bucket i holds the games scored
// i+1, labelled with i+1 stars. Unrated games are left out.
func Scores(games []models.Finished) Series {
	series := Series{
		Labels: make([]string, 0, models.MaxScore),
		Values: make([]int, models.MaxScore),
	}
	for score := 1; score <= models.MaxScore; score++ {
		series.Labels = append(series.Labels, strings.Repeat("★", score))
	}

	for _, game := range games {
		if game.Score >= 1 && game.Score <= models.MaxScore {
			series.Values[game.Score-1]++
		}
	}

	return series
}

// Reasons counts abandoned games per reason, buckets in first-seen order.
func Reasons(games []models.Abandoned) Series {
	series := Series{Labels: []string{}, Values: []int{}}
	index := make(map[models.AbandonReason]int)

	for _, game := range games {
		i, ok := index[game.Reason]
		if !ok {
			i = len(series.Labels)
			index[game.Reason] = i
			series.Labels = append(series.Labels, string(game.Reason))
			series.Values = append(series.Values, 0)
		}
		series.Values[i]++
	}

	return series
}

// Stats totals finished games and averages their hours to one decimal.
// Games without hours count as zero.
func Stats(games []models.Finished) FinishedStats {
	stats := FinishedStats{Total: len(games), AverageHours: decimal.Zero}
	if len(games) == 0 {
		return stats
	}

	total := decimal.Zero
	for _, game := range games {
		if game.HoursSpent.Valid {
			total = total.Add(game.HoursSpent.Decimal)
		}
	}

	stats.AverageHours = total.Div(decimal.NewFromInt(int64(len(games)))).Round(1)
	return stats
}
