package navigation

import "gameshelf/internal/models"

type ActionType string

const (
	SelectTabAction  ActionType = "select_tab"
	OpenFormAction   ActionType = "open_form"
	OpenViewAction   ActionType = "open_view"
	CloseModalAction ActionType = "close_modal"
	DraftAction      ActionType = "draft"
	KeyAction        ActionType = "key"
)

// Action is a navigation request as sent by the client.
type Action struct {
	Type       ActionType           `json:"type"`
	Tab        models.CollectionKey `json:"tab,omitempty"`
	Collection models.CollectionKey `json:"collection,omitempty"`
	ID         string               `json:"id,omitempty"`
	Field      string               `json:"field,omitempty"`
	Value      string               `json:"value,omitempty"`
	Key        string               `json:"key,omitempty"`
	Ctrl       bool                 `json:"ctrl,omitempty"`
}

func (n *Navigator) Apply(action Action) (State, error) {
	switch action.Type {
	case SelectTabAction:
		state, _, err := n.SelectTab(action.Tab)
		return state, err
	case OpenFormAction:
		return n.OpenForm(action.Collection, action.ID)
	case OpenViewAction:
		return n.OpenView(action.Collection, action.ID)
	case CloseModalAction:
		state, _ := n.CloseModal()
		return state, nil
	case DraftAction:
		return n.UpdateDraft(action.Field, action.Value)
	case KeyAction:
		state, _ := n.HandleKey(action.Key, action.Ctrl)
		return state, nil
	}

	return n.State(), ErrUnknownAction
}
