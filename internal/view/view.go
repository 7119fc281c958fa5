// Package view projects the game collections into display-ready tables,
// detail views and edit forms. Every projection is rebuilt from scratch.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gameshelf/internal/models"
	"gameshelf/internal/schema"
)

const (
	MaxCellLength = 30
	Ellipsis      = "..."
	NotProvided   = "Not provided"
	FilledStar    = "★"
	EmptyStar     = "☆"
)

type ActionKind string

const (
	ViewAction   ActionKind = "view"
	EditAction   ActionKind = "edit"
	DeleteAction ActionKind = "delete"
)

type Action struct {
	Kind   ActionKind `json:"kind"`
	Method string     `json:"method"`
	Path   string     `json:"path"`
}

// Cell is one rendered table value. Title carries the untruncated value.
type Cell struct {
	Key   string `json:"key"`
	Text  string `json:"text"`
	Title string `json:"title"`
	Stars bool   `json:"stars,omitempty"`
}

type Row struct {
	ID      string   `json:"id"`
	Cells   []Cell   `json:"cells"`
	Actions []Action `json:"actions"`
}

// Table is the projection of one collection. An empty collection renders
// only its placeholder.
type Table struct {
	Collection  models.CollectionKey `json:"collection"`
	Title       string               `json:"title"`
	Empty       bool                 `json:"empty"`
	Placeholder string               `json:"placeholder,omitempty"`
	Columns     []schema.Column      `json:"columns,omitempty"`
	Rows        []Row                `json:"rows"`
}

type Render struct {
	Tables []Table `json:"tables"`
}

// RenderAll projects every collection in tab order.
func RenderAll(state models.State) Render {
	collections := schema.All()
	render := Render{Tables: make([]Table, 0, len(collections))}
	for _, collection := range collections {
		render.Tables = append(render.Tables, RenderTable(collection, state.Records(collection.Key)))
	}
	return render
}

func RenderTable(collection schema.Collection, records []models.Record) Table {
	table := Table{
		Collection: collection.Key,
		Title:      collection.Title,
		Rows:       []Row{},
	}

	if len(records) == 0 {
		table.Empty = true
		table.Placeholder = collection.Placeholder
		return table
	}

	table.Columns = collection.TableColumns()
	for _, record := range records {
		table.Rows = append(table.Rows, renderRow(collection, record))
	}

	return table
}

func renderRow(collection schema.Collection, record models.Record) Row {
	row := Row{
		ID:      record.RecordID(),
		Cells:   make([]Cell, 0, len(collection.Columns)),
		Actions: rowActions(collection.Key, record.RecordID()),
	}

	for _, key := range collection.Columns {
		field, _ := collection.Field(key)
		value := record.Value(key)

		if field.Stars {
			row.Cells = append(row.Cells, Cell{
				Key:   key,
				Text:  Stars(scoreOf(value)),
				Title: value,
				Stars: true,
			})
			continue
		}

		text, _ := Truncate(value, MaxCellLength)
		row.Cells = append(row.Cells, Cell{Key: key, Text: text, Title: value})
	}

	return row
}

func rowActions(key models.CollectionKey, id string) []Action {
	base := fmt.Sprintf("/api/games/%s/%s", key, id)
	return []Action{
		{Kind: ViewAction, Method: "GET", Path: base + "/view"},
		{Kind: EditAction, Method: "GET", Path: fmt.Sprintf("/api/games/%s/form?id=%s", key, id)},
		{Kind: DeleteAction, Method: "DELETE", Path: base},
	}
}

// Truncate shortens value to limit characters followed by an ellipsis and
// reports whether it did.
func Truncate(value string, limit int) (string, bool) {
	if utf8.RuneCountInString(value) <= limit {
		return value, false
	}
	runes := []rune(value)
	return string(runes[:limit]) + Ellipsis, true
}

// Stars renders a score as five stars, filled up to the score.
func Stars(score int) string {
	score = min(max(score, models.MinScore), models.MaxScore)
	return strings.Repeat(FilledStar, score) + strings.Repeat(EmptyStar, models.MaxScore-score)
}

func scoreOf(value string) int {
	score, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return score
}
