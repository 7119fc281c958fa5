package schema

import (
	"regexp"
	"slices"
	"strconv"

	"gameshelf/internal/models"
	"gameshelf/internal/validation"

	"github.com/shopspring/decimal"
)

const (
	NameMinLength = 2
	NameMaxLength = 100
)

var scorePattern = regexp.MustCompile(`^[1-5]$`)

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.RequiredRule("Game name is required"),
		validation.MinLengthRule(NameMinLength, "Name must have at least 2 characters"),
		validation.MaxLengthRule(NameMaxLength, "Name cannot have more than 100 characters"),
	}
}

func hoursRules() []validation.Rule {
	return []validation.Rule{validation.NumericRule("Hours must be a positive number")}
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, string(value))
	}
	return out
}

var wantToPlay = Collection{
	Key:         models.WantToPlayCollection,
	Title:       "Want to Play",
	Placeholder: "No games on your want-to-play list yet.",
	ExportFile:  "games_to_play.csv",
	Fields: []Field{
		{Key: "name", Label: "Game Name", Input: TextInput},
		{Key: "category", Label: "Category", Input: TextInput},
		{Key: "subcategory", Label: "Subcategory", Input: TextInput},
		{Key: "releaseDate", Label: "Release Date", Input: DateInput},
		{
			Key:     "interestLevel",
			Label:   "Interest",
			Input:   SelectInput,
			Options: stringsOf(models.InterestLevels),
			Default: string(models.InterestMedium),
		},
		{Key: "platforms", Label: "Platforms", Input: TextInput},
		{
			Key:     "status",
			Label:   "Status",
			Input:   SelectInput,
			Options: stringsOf(models.ReleaseStatuses),
			Default: string(models.StatusAlreadyReleased),
		},
		{Key: "estimatedHours", Label: "Estimated Time (h)", Input: NumberInput},
		{Key: "notes", Label: "Notes", Input: TextAreaInput},
	},
	Rules: validation.RuleSet{
		{Field: "name", Rules: nameRules()},
		{Field: "interestLevel", Rules: []validation.Rule{
			validation.RequiredRule("Select the interest level"),
		}},
		{Field: "estimatedHours", Rules: hoursRules()},
	},
	Columns: []string{"name", "category", "releaseDate", "interestLevel", "platforms", "status"},
	Export: []string{
		"name", "category", "subcategory", "releaseDate", "interestLevel",
		"platforms", "status", "estimatedHours", "notes",
	},
	decode: decodeWantToPlay,
}

var finished = Collection{
	Key:         models.FinishedCollection,
	Title:       "Finished",
	Placeholder: "No finished games yet.",
	ExportFile:  "games_finished.csv",
	Fields: []Field{
		{Key: "name", Label: "Game Name", Input: TextInput},
		{Key: "category", Label: "Category", Input: TextInput},
		{
			Key:     "score",
			Label:   "Score",
			Input:   RadioInput,
			Options: []string{"1", "2", "3", "4", "5"},
			Stars:   true,
		},
		{Key: "dateFinished", Label: "Date Finished", Input: DateInput},
		{Key: "platform", Label: "Platform", Input: TextInput},
		{Key: "hoursSpent", Label: "Time Spent (h)", Input: NumberInput},
		{Key: "review", Label: "Review", Input: TextAreaInput},
	},
	Rules: validation.RuleSet{
		{Field: "name", Rules: nameRules()},
		{Field: "score", Rules: []validation.Rule{
			validation.RequiredRule("Select a rating from 1 to 5 stars"),
			validation.PatternRule(scorePattern, "Select a rating from 1 to 5 stars"),
		}},
		{Field: "hoursSpent", Rules: hoursRules()},
	},
	Columns: []string{"name", "category", "score", "platform", "hoursSpent"},
	Export: []string{
		"name", "category", "score", "dateFinished", "platform", "hoursSpent", "review",
	},
	decode: decodeFinished,
}

var abandoned = Collection{
	Key:         models.AbandonedCollection,
	Title:       "Abandoned",
	Placeholder: "No abandoned games. Nice!",
	ExportFile:  "games_abandoned.csv",
	Fields: []Field{
		{Key: "name", Label: "Game Name", Input: TextInput},
		{Key: "category", Label: "Category", Input: TextInput},
		{
			Key:     "reason",
			Label:   "Reason",
			Input:   SelectInput,
			Options: stringsOf(models.AbandonReasons),
			Default: string(models.ReasonBoring),
		},
		{Key: "hoursPlayed", Label: "Gameplay Time (h)", Input: NumberInput},
		{Key: "notes", Label: "Notes", Input: TextAreaInput},
	},
	Rules: validation.RuleSet{
		{Field: "name", Rules: nameRules()},
		{Field: "reason", Rules: []validation.Rule{
			validation.RequiredRule("Select a reason for giving up"),
		}},
		{Field: "hoursPlayed", Rules: hoursRules()},
	},
	Columns: []string{"name", "category", "reason", "hoursPlayed", "notes"},
	Export:  []string{"name", "category", "reason", "hoursPlayed", "notes"},
	decode:  decodeAbandoned,
}

func decodeWantToPlay(id string, form *validation.Form) (models.Record, bool) {
	ok := true

	interest := models.InterestLevel(valueOr(form, "interestLevel", string(models.InterestMedium)))
	if !slices.Contains(models.InterestLevels, interest) {
		form.MarkError("interestLevel", "Select the interest level")
		ok = false
	}

	status := models.ReleaseStatus(valueOr(form, "status", string(models.StatusAlreadyReleased)))
	if !slices.Contains(models.ReleaseStatuses, status) {
		form.MarkError("status", "Select a release status")
		ok = false
	}

	hours, hoursOK := decodeHours(form, "estimatedHours")

	return models.WantToPlay{
		ID:             id,
		Name:           form.Get("name"),
		Category:       form.Get("category"),
		Subcategory:    form.Get("subcategory"),
		ReleaseDate:    form.Get("releaseDate"),
		InterestLevel:  interest,
		Platforms:      form.Get("platforms"),
		Status:         status,
		EstimatedHours: hours,
		Notes:          form.Get("notes"),
	}, ok && hoursOK
}

func decodeFinished(id string, form *validation.Form) (models.Record, bool) {
	ok := true

	score := 0
	if raw := form.Get("score"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < models.MinScore || parsed > models.MaxScore {
			form.MarkError("score", "Select a rating from 1 to 5 stars")
			ok = false
		} else {
			score = parsed
		}
	}

	hours, hoursOK := decodeHours(form, "hoursSpent")

	return models.Finished{
		ID:           id,
		Name:         form.Get("name"),
		Category:     form.Get("category"),
		Score:        score,
		DateFinished: form.Get("dateFinished"),
		Platform:     form.Get("platform"),
		HoursSpent:   hours,
		Review:       form.Get("review"),
	}, ok && hoursOK
}

func decodeAbandoned(id string, form *validation.Form) (models.Record, bool) {
	hours, ok := decodeHours(form, "hoursPlayed")

	return models.Abandoned{
		ID:          id,
		Name:        form.Get("name"),
		Category:    form.Get("category"),
		Reason:      models.AbandonReason(valueOr(form, "reason", string(models.ReasonBoring))),
		HoursPlayed: hours,
		Notes:       form.Get("notes"),
	}, ok
}

func valueOr(form *validation.Form, field, fallback string) string {
	if value := form.Get(field); value != "" {
		return value
	}
	return fallback
}

func decodeHours(form *validation.Form, field string) (decimal.NullDecimal, bool) {
	raw := form.Get(field)
	if raw == "" {
		return decimal.NullDecimal{}, true
	}

	hours, err := decimal.NewFromString(raw)
	if err != nil || hours.IsNegative() {
		form.MarkError(field, "Hours must be a positive number")
		return decimal.NullDecimal{}, false
	}

	return decimal.NewNullDecimal(hours), true
}
