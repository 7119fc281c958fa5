package schema

import (
	"errors"
	"testing"

	"gameshelf/internal/models"
	"gameshelf/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_TabOrder(t *testing.T) {
	collections := All()
	require.Len(t, collections, 3)
	assert.Equal(t, models.WantToPlayCollection, collections[0].Key)
	assert.Equal(t, models.FinishedCollection, collections[1].Key)
	assert.Equal(t, models.AbandonedCollection, collections[2].Key)
}

func TestCollections_ColumnsReferenceDeclaredFields(t *testing.T) {
	for _, collection := range All() {
		t.Run(collection.Key.String(), func(t *testing.T) {
			for _, key := range append(collection.Columns, collection.Export...) {
				_, ok := collection.Field(key)
				assert.True(t, ok, "column %q has no field", key)
			}
			for _, fieldRules := range collection.Rules {
				_, ok := collection.Field(fieldRules.Field)
				assert.True(t, ok, "rule for %q has no field", fieldRules.Field)
			}
		})
	}
}

func TestTableColumns(t *testing.T) {
	collection, ok := Get(models.FinishedCollection)
	require.True(t, ok)

	columns := collection.TableColumns()
	require.Len(t, columns, 5)
	assert.Equal(t, Column{Key: "name", Header: "Game Name"}, columns[0])
	assert.Equal(t, Column{Key: "score", Header: "Score"}, columns[2])
}

func TestGet_Unknown(t *testing.T) {
	_, ok := Get(models.CollectionKey("wishlist"))
	assert.False(t, ok)
}

func TestDecode_WantToPlay(t *testing.T) {
	collection, _ := Get(models.WantToPlayCollection)

	tests := []struct {
		name        string
		values      map[string]string
		expectErr   bool
		expectField string
		check       func(t *testing.T, game models.WantToPlay)
	}{
		{
			name: "defaults applied to empty selects",
			values: map[string]string{
				"name": "  Hades  ",
			},
			check: func(t *testing.T, game models.WantToPlay) {
				assert.Equal(t, "Hades", game.Name)
				assert.Equal(t, models.InterestMedium, game.InterestLevel)
				assert.Equal(t, models.StatusAlreadyReleased, game.Status)
				assert.False(t, game.EstimatedHours.Valid)
			},
		},
		{
			name: "hours parsed as decimal",
			values: map[string]string{
				"name":           "Outer Wilds",
				"interestLevel":  "High",
				"status":         "Early Access",
				"estimatedHours": "22.5",
			},
			check: func(t *testing.T, game models.WantToPlay) {
				assert.Equal(t, models.InterestHigh, game.InterestLevel)
				assert.Equal(t, models.StatusEarlyAccess, game.Status)
				require.True(t, game.EstimatedHours.Valid)
				assert.True(t, decimal.RequireFromString("22.5").Equal(game.EstimatedHours.Decimal))
			},
		},
		{
			name:        "unknown interest level rejected",
			values:      map[string]string{"name": "Celeste", "interestLevel": "Extreme"},
			expectErr:   true,
			expectField: "interestLevel",
		},
		{
			name:        "negative hours rejected",
			values:      map[string]string{"name": "Celeste", "estimatedHours": "-2"},
			expectErr:   true,
			expectField: "estimatedHours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validation.NewForm(tt.values)
			record, err := collection.Decode("game-1", form)

			if tt.expectErr {
				assert.True(t, errors.Is(err, validation.ErrInvalidForm))
				_, marked := form.Error(tt.expectField)
				assert.True(t, marked)
				return
			}

			require.NoError(t, err)
			game, ok := record.(models.WantToPlay)
			require.True(t, ok)
			assert.Equal(t, "game-1", game.ID)
			tt.check(t, game)
		})
	}
}

func TestDecode_FinishedScore(t *testing.T) {
	collection, _ := Get(models.FinishedCollection)

	tests := []struct {
		score     string
		expected  int
		expectErr bool
	}{
		{"", 0, false},
		{"1", 1, false},
		{"5", 5, false},
		{"6", 0, true},
		{"-1", 0, true},
		{"three", 0, true},
	}

	for _, tt := range tests {
		t.Run("score "+tt.score, func(t *testing.T) {
			form := validation.NewForm(map[string]string{"name": "Hollow Knight", "score": tt.score})
			record, err := collection.Decode("id", form)
			if tt.expectErr {
				var validationErr *validation.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "score", validationErr.Fields[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, record.(models.Finished).Score)
		})
	}
}

func TestDecode_AbandonedKeepsAnyReason(t *testing.T) {
	collection, _ := Get(models.AbandonedCollection)

	record, err := collection.Decode("id", validation.NewForm(map[string]string{
		"name":   "Dark Souls",
		"reason": "Cat sat on the controller",
	}))
	require.NoError(t, err)
	assert.Equal(t, models.AbandonReason("Cat sat on the controller"), record.(models.Abandoned).Reason)

	record, err = collection.Decode("id", validation.NewForm(map[string]string{"name": "Dark Souls"}))
	require.NoError(t, err)
	assert.Equal(t, models.ReasonBoring, record.(models.Abandoned).Reason)
}

func TestFormValues(t *testing.T) {
	finishedSchema, _ := Get(models.FinishedCollection)
	wantSchema, _ := Get(models.WantToPlayCollection)

	t.Run("new record uses defaults", func(t *testing.T) {
		values := wantSchema.FormValues(nil)
		assert.Equal(t, "Medium", values["interestLevel"])
		assert.Equal(t, "Already Released", values["status"])
		assert.Equal(t, "", values["name"])
	})

	t.Run("unrated score leaves the radio group empty", func(t *testing.T) {
		values := finishedSchema.FormValues(models.Finished{ID: "1", Name: "Tunic"})
		assert.Equal(t, "", values["score"])
		assert.Equal(t, "Tunic", values["name"])
	})

	t.Run("stored values are kept", func(t *testing.T) {
		values := finishedSchema.FormValues(models.Finished{
			ID:         "1",
			Name:       "Tunic",
			Score:      4,
			HoursSpent: decimal.NewNullDecimal(decimal.NewFromInt(18)),
		})
		assert.Equal(t, "4", values["score"])
		assert.Equal(t, "18", values["hoursSpent"])
	})
}
