package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"gameshelf/internal/models"
	"gameshelf/internal/schema"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectionFor(t *testing.T, key models.CollectionKey) schema.Collection {
	t.Helper()
	collection, ok := schema.Get(key)
	require.True(t, ok)
	return collection
}

func TestCSV_NothingToExport(t *testing.T) {
	for _, collection := range schema.All() {
		t.Run(collection.Key.String(), func(t *testing.T) {
			file, err := CSV(collection, nil)
			assert.ErrorIs(t, err, ErrNothingToExport)
			assert.Empty(t, file.Content)
		})
	}
}

func TestCSV_QuotingSurvivesReparse(t *testing.T) {
	collection := collectionFor(t, models.FinishedCollection)
	records := []models.Record{
		models.Finished{
			ID:         "1",
			Name:       "Hades, Supergiant",
			Category:   "Rogue-like",
			Score:      5,
			Platform:   "PC",
			HoursSpent: decimal.NewNullDecimal(decimal.RequireFromString("61.5")),
			Review:     `Said "one more run" all night`,
		},
		models.Finished{ID: "2", Name: "Line\nBreak"},
	}

	file, err := CSV(collection, records)
	require.NoError(t, err)
	assert.Equal(t, "games_finished.csv", file.Name)

	content := string(file.Content)
	require.True(t, strings.HasPrefix(content, ByteOrderMark))
	assert.Contains(t, content, `"Said ""one more run"" all night"`)

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, ByteOrderMark))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Game Name", "Category", "Score", "Date Finished", "Platform", "Time Spent (h)", "Review",
	}, rows[0])
	assert.Equal(t, []string{
		"Hades, Supergiant", "Rogue-like", "5", "", "PC", "61.5", `Said "one more run" all night`,
	}, rows[1])
	assert.Equal(t, "Line\nBreak", rows[2][0])
	assert.Equal(t, "0", rows[2][2])
}

func TestCSV_RecordCellsQuoted(t *testing.T) {
	collection := collectionFor(t, models.AbandonedCollection)
	file, err := CSV(collection, []models.Record{
		models.Abandoned{ID: "1", Name: "Anthem", Reason: models.ReasonTooLong},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimPrefix(string(file.Content), ByteOrderMark), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `Game Name,Category,Reason,Gameplay Time (h),Notes`, lines[0])
	assert.Equal(t, `"Anthem","","Too Long","",""`, lines[1])
}

func TestCSV_Filenames(t *testing.T) {
	expected := map[models.CollectionKey]string{
		models.WantToPlayCollection: "games_to_play.csv",
		models.FinishedCollection:   "games_finished.csv",
		models.AbandonedCollection:  "games_abandoned.csv",
	}

	for key, name := range expected {
		assert.Equal(t, name, collectionFor(t, key).ExportFile)
	}
}
