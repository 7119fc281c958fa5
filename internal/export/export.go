// Package export writes a collection as a spreadsheet-friendly CSV file.
package export

import (
	"errors"
	"strings"

	"gameshelf/internal/models"
	"gameshelf/internal/schema"
)

const (
	ByteOrderMark = "\uFEFF"
	ContentType   = "text/csv;charset=utf-8"
)

var ErrNothingToExport = errors.New("nothing to export")

type File struct {
	Name    string
	Content []byte
}

// CSV renders the header row and one row per record. Headers are written as
// declared and joined by commas. Every record cell is quoted with embedded
// quotes doubled, rows are joined by "\n" and the file starts with a UTF-8
// byte order mark.
func CSV(collection schema.Collection, records []models.Record) (File, error) {
	if len(records) == 0 {
		return File{}, ErrNothingToExport
	}

	columns := collection.ExportColumns()
	rows := make([]string, 0, len(records)+1)

	headers := make([]string, 0, len(columns))
	for _, column := range columns {
		headers = append(headers, column.Header)
	}
	rows = append(rows, strings.Join(headers, ","))

	for _, record := range records {
		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, record.Value(column.Key))
		}
		rows = append(rows, joinQuoted(cells))
	}

	return File{
		Name:    collection.ExportFile,
		Content: []byte(ByteOrderMark + strings.Join(rows, "\n")),
	}, nil
}

func joinQuoted(cells []string) string {
	quoted := make([]string, 0, len(cells))
	for _, cell := range cells {
		quoted = append(quoted, `"`+strings.ReplaceAll(cell, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, ",")
}
