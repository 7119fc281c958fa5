package handlers

import (
	"strings"
	"unicode/utf8"

	"gameshelf/internal/app"
	"gameshelf/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Handler
	gameSearch *services.GameSearchService
}

func NewSearchHandler(app app.App, router fiber.Router) *SearchHandler {
	log := logger.New("handlers").File("search_handler")
	return &SearchHandler{
		gameSearch: app.Services.GameSearch,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SearchHandler) Register() {
	h.router.Get("/search", h.search)
}

// search answers type-ahead lookups directly. Provider failures are shown
// inline, so the status is always 200.
func (h *SearchHandler) search(c *fiber.Ctx) error {
	query := c.Query("q")

	names, err := h.gameSearch.Search(c.UserContext(), query)
	if names == nil {
		names = []string{}
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"names":   names,
		"message": searchMessage(query, names, err),
	})
}

func searchMessage(query string, names []string, err error) string {
	if utf8.RuneCountInString(strings.TrimSpace(query)) < services.MinSearchQueryLength && err == nil {
		return ""
	}
	return services.SearchMessage(names, err)
}
