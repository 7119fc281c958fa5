package persistence

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const stateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["wantToPlay", "finished", "abandoned"],
  "definitions": {
    "text": {"type": "string"},
    "hours": {
      "oneOf": [
        {"type": "null"},
        {"type": "number", "minimum": 0},
        {"type": "string", "pattern": "^[0-9]+(\\.[0-9]+)?$"}
      ]
    },
    "base": {
      "type": "object",
      "required": ["id", "name"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string"},
        "category": {"$ref": "#/definitions/text"}
      }
    }
  },
  "properties": {
    "wantToPlay": {
      "type": ["array", "null"],
      "items": {
        "allOf": [{"$ref": "#/definitions/base"}],
        "properties": {
          "subcategory": {"$ref": "#/definitions/text"},
          "releaseDate": {"$ref": "#/definitions/text"},
          "interestLevel": {"$ref": "#/definitions/text"},
          "platforms": {"$ref": "#/definitions/text"},
          "status": {"$ref": "#/definitions/text"},
          "estimatedHours": {"$ref": "#/definitions/hours"},
          "notes": {"$ref": "#/definitions/text"}
        }
      }
    },
    "finished": {
      "type": ["array", "null"],
      "items": {
        "allOf": [{"$ref": "#/definitions/base"}],
        "properties": {
          "score": {"type": "integer", "minimum": 0, "maximum": 5},
          "dateFinished": {"$ref": "#/definitions/text"},
          "platform": {"$ref": "#/definitions/text"},
          "hoursSpent": {"$ref": "#/definitions/hours"},
          "review": {"$ref": "#/definitions/text"}
        }
      }
    },
    "abandoned": {
      "type": ["array", "null"],
      "items": {
        "allOf": [{"$ref": "#/definitions/base"}],
        "properties": {
          "reason": {"$ref": "#/definitions/text"},
          "hoursPlayed": {"$ref": "#/definitions/hours"},
          "notes": {"$ref": "#/definitions/text"}
        }
      }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(stateSchema))
})

const maxReportedErrors = 5

func validateDocument(doc []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("state schema not available: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}

	if !res.Valid() {
		var msgs []string
		for i, e := range res.Errors() {
			if i >= maxReportedErrors {
				break
			}
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}

	return nil
}
