// Package schema declares, once per collection, the form inputs, validation
// rules, table columns and export columns. The form reader, the renderer and
// the exporter all read from these declarations.
package schema

import (
	"gameshelf/internal/models"
	"gameshelf/internal/validation"
)

type InputKind string

const (
	TextInput     InputKind = "text"
	TextAreaInput InputKind = "textarea"
	SelectInput   InputKind = "select"
	RadioInput    InputKind = "radio"
	NumberInput   InputKind = "number"
	DateInput     InputKind = "date"
)

// Field describes one record field and the input that edits it.
type Field struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Input   InputKind `json:"input"`
	Options []string  `json:"options,omitempty"`
	Default string    `json:"default,omitempty"`
	Stars   bool      `json:"stars,omitempty"`
}

type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

type Collection struct {
	Key         models.CollectionKey
	Title       string
	Placeholder string
	ExportFile  string
	Fields      []Field
	Rules       validation.RuleSet
	Columns     []string
	Export      []string

	decode func(id string, form *validation.Form) (models.Record, bool)
}

func (c Collection) Field(key string) (Field, bool) {
	for _, field := range c.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// TableColumns pairs the table column keys with their labels.
func (c Collection) TableColumns() []Column {
	return c.columns(c.Columns)
}

// ExportColumns pairs the export keys with their labels, in export order.
func (c Collection) ExportColumns() []Column {
	return c.columns(c.Export)
}

func (c Collection) columns(keys []string) []Column {
	columns := make([]Column, 0, len(keys))
	for _, key := range keys {
		field, _ := c.Field(key)
		columns = append(columns, Column{Key: key, Header: field.Label})
	}
	return columns
}

// Decode builds a record from a validated form. Values that cannot be
// converted are marked on the form and a ValidationError is returned.
func (c Collection) Decode(id string, form *validation.Form) (models.Record, error) {
	record, ok := c.decode(id, form)
	if !ok {
		return nil, validation.NewValidationError(form)
	}
	return record, nil
}

// FormValues returns the values an edit form starts with: the record's
// stored values, or the field defaults when record is nil.
func (c Collection) FormValues(record models.Record) map[string]string {
	values := make(map[string]string, len(c.Fields))
	for _, field := range c.Fields {
		if record == nil {
			values[field.Key] = field.Default
			continue
		}
		value := record.Value(field.Key)
		if field.Stars && value == "0" {
			value = ""
		}
		if value == "" {
			value = field.Default
		}
		values[field.Key] = value
	}
	return values
}

var registry = map[models.CollectionKey]Collection{
	models.WantToPlayCollection: wantToPlay,
	models.FinishedCollection:   finished,
	models.AbandonedCollection:  abandoned,
}

func Get(key models.CollectionKey) (Collection, bool) {
	collection, ok := registry[key]
	return collection, ok
}

// All returns the collections in tab order.
func All() []Collection {
	collections := make([]Collection, 0, len(models.CollectionKeys))
	for _, key := range models.CollectionKeys {
		collections = append(collections, registry[key])
	}
	return collections
}
