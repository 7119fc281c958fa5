package view

import (
	"strings"

	"gameshelf/internal/models"
	"gameshelf/internal/schema"
	"gameshelf/internal/validation"
)

type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Empty bool   `json:"empty,omitempty"`
	Stars bool   `json:"stars,omitempty"`
}

type Detail struct {
	Collection models.CollectionKey `json:"collection"`
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Fields     []DetailField        `json:"fields"`
}

// RenderDetail lists every schema field of the record with its label. Empty
// values and an unrated score show as not provided.
func RenderDetail(collection schema.Collection, record models.Record) Detail {
	detail := Detail{
		Collection: collection.Key,
		ID:         record.RecordID(),
		Title:      record.RecordName(),
		Fields:     make([]DetailField, 0, len(collection.Fields)),
	}

	for _, field := range collection.Fields {
		value := strings.TrimSpace(record.Value(field.Key))

		switch {
		case field.Stars && scoreOf(value) > 0:
			detail.Fields = append(detail.Fields, DetailField{
				Label: field.Label,
				Value: Stars(scoreOf(value)),
				Stars: true,
			})
		case value == "" || (field.Stars && scoreOf(value) == 0):
			detail.Fields = append(detail.Fields, DetailField{
				Label: field.Label,
				Value: NotProvided,
				Empty: true,
			})
		default:
			detail.Fields = append(detail.Fields, DetailField{Label: field.Label, Value: value})
		}
	}

	return detail
}

type FormField struct {
	schema.Field
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

type FormView struct {
	Collection models.CollectionKey `json:"collection"`
	ID         string               `json:"id,omitempty"`
	Title      string               `json:"title"`
	Fields     []FormField          `json:"fields"`
}

// RenderForm populates the edit form: the record's stored values, or the
// schema defaults when record is nil.
func RenderForm(collection schema.Collection, record models.Record) FormView {
	form := FormView{
		Collection: collection.Key,
		Title:      "Add to " + collection.Title,
	}
	if record != nil {
		form.ID = record.RecordID()
		form.Title = "Edit " + record.RecordName()
	}

	values := collection.FormValues(record)
	for _, field := range collection.Fields {
		form.Fields = append(form.Fields, FormField{Field: field, Value: values[field.Key]})
	}

	return form
}

// RenderRejectedForm echoes submitted values back with their error marks.
func RenderRejectedForm(collection schema.Collection, id string, submitted *validation.Form) FormView {
	form := FormView{
		Collection: collection.Key,
		ID:         id,
		Title:      "Add to " + collection.Title,
	}
	if id != "" {
		form.Title = "Edit " + submitted.Get("name")
	}

	for _, field := range collection.Fields {
		message, _ := submitted.Error(field.Key)
		form.Fields = append(form.Fields, FormField{
			Field: field,
			Value: submitted.Get(field.Key),
			Error: message,
		})
	}

	return form
}
