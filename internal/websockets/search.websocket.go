package websockets

import (
	"gameshelf/internal/events"
	"gameshelf/internal/search"
)

// handleSearchInput debounces a keystroke in one of the client's name
// inputs. Results go back to this client only.
func (c *Client) handleSearchInput(message Message) {
	log := c.Manager.log.Function("handleSearchInput")

	inputID, _ := message.Data["inputId"].(string)
	query, _ := message.Data["query"].(string)
	if inputID == "" {
		log.Warn("Search input without inputId", "clientID", c.ID)
		c.enqueue(NewMessage(events.ERROR, map[string]any{"reason": "inputId is required"}))
		return
	}

	if c.Manager.debouncer == nil {
		c.enqueue(NewMessage(events.SEARCH_RESULTS, map[string]any{
			"inputId": inputID,
			"query":   query,
			"names":   []string{},
			"message": "Game search is not configured",
		}))
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.inputs[inputID] = struct{}{}
	c.mu.Unlock()

	c.Manager.debouncer.Input(c.searchKey(inputID), query, func(result search.Result) {
		c.enqueue(NewMessage(events.SEARCH_RESULTS, map[string]any{
			"inputId": inputID,
			"query":   result.Query,
			"names":   result.Names,
			"message": result.Message,
		}))
	})
}

func (c *Client) searchKey(inputID string) string {
	return c.ID + ":" + inputID
}

func (c *Client) cancelSearches() {
	if c.Manager.debouncer == nil {
		return
	}

	c.mu.Lock()
	inputs := make([]string, 0, len(c.inputs))
	for inputID := range c.inputs {
		inputs = append(inputs, inputID)
	}
	clear(c.inputs)
	c.mu.Unlock()

	for _, inputID := range inputs {
		c.Manager.debouncer.Cancel(c.searchKey(inputID))
	}
}
