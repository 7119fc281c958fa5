package middleware

import (
	"net/http/httptest"
	"testing"

	"gameshelf/config"
	"gameshelf/internal/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated when absent"},
		{name: "kept when provided", incoming: "trace-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(events.New(nil), config.Config{})
			app := fiber.New()
			app.Use(m.TraceID())

			var seen string
			app.Get("/", func(c *fiber.Ctx) error {
				seen = GetTraceID(c)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.incoming != "" {
				req.Header.Set(TraceIDHeader, tt.incoming)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)

			header := resp.Header.Get(TraceIDHeader)
			assert.NotEmpty(t, header)
			assert.Equal(t, header, seen)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, header)
			}
		})
	}
}
