// Package navigation tracks the selected tab and the single open modal.
// It never touches the collections.
package navigation

import (
	"errors"
	"maps"
	"sync"

	"gameshelf/internal/models"
)

type ModalKind string

const (
	FormModal    ModalKind = "form"
	ViewModal    ModalKind = "view"
	ConfirmModal ModalKind = "confirm"
)

var (
	ErrUnknownTab    = errors.New("unknown tab")
	ErrUnknownAction = errors.New("unknown navigation action")
	ErrNoOpenForm    = errors.New("no form is open")
)

// Modal is the open dialog. Draft holds in-progress form input and is
// dropped when the modal closes.
type Modal struct {
	Kind       ModalKind            `json:"kind"`
	Collection models.CollectionKey `json:"collection,omitempty"`
	RecordID   string               `json:"recordId,omitempty"`
	Token      string               `json:"token,omitempty"`
	Draft      map[string]string    `json:"draft,omitempty"`
}

type State struct {
	Tab   models.CollectionKey `json:"tab"`
	Modal *Modal               `json:"modal"`
}

type Navigator struct {
	mu    sync.Mutex
	state State
}

func New() *Navigator {
	return &Navigator{state: State{Tab: models.WantToPlayCollection}}
}

func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshot()
}

// SelectTab switches tabs. Selecting the current tab changes nothing.
func (n *Navigator) SelectTab(tab models.CollectionKey) (State, bool, error) {
	if !tab.Valid() {
		return n.State(), false, ErrUnknownTab
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state.Tab == tab {
		return n.snapshot(), false, nil
	}
	n.state.Tab = tab
	return n.snapshot(), true, nil
}

// OpenForm opens the add form, or the edit form when id is set. Any modal
// already open is replaced.
func (n *Navigator) OpenForm(collection models.CollectionKey, id string) (State, error) {
	if !collection.Valid() {
		return n.State(), ErrUnknownTab
	}
	return n.open(&Modal{Kind: FormModal, Collection: collection, RecordID: id, Draft: map[string]string{}}), nil
}

func (n *Navigator) OpenView(collection models.CollectionKey, id string) (State, error) {
	if !collection.Valid() {
		return n.State(), ErrUnknownTab
	}
	return n.open(&Modal{Kind: ViewModal, Collection: collection, RecordID: id}), nil
}

func (n *Navigator) OpenConfirm(token string) State {
	return n.open(&Modal{Kind: ConfirmModal, Token: token})
}

// UpdateDraft records in-progress input on the open form.
func (n *Navigator) UpdateDraft(field, value string) (State, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state.Modal == nil || n.state.Modal.Kind != FormModal {
		return n.snapshot(), ErrNoOpenForm
	}
	n.state.Modal.Draft[field] = value
	return n.snapshot(), nil
}

// CloseModal closes whatever is open and discards its draft. It reports
// whether a modal was open.
func (n *Navigator) CloseModal() (State, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	wasOpen := n.state.Modal != nil
	n.state.Modal = nil
	return n.snapshot(), wasOpen
}

// CloseConfirm closes the modal only if it is the prompt for token.
func (n *Navigator) CloseConfirm(token string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state.Modal != nil && n.state.Modal.Kind == ConfirmModal && n.state.Modal.Token == token {
		n.state.Modal = nil
	}
}

// HandleKey applies the keyboard shortcuts: Ctrl+1..3 select a tab and
// Escape closes the open modal.
func (n *Navigator) HandleKey(key string, ctrl bool) (State, bool) {
	if key == "Escape" {
		return n.CloseModal()
	}

	if !ctrl {
		return n.State(), false
	}

	var tab models.CollectionKey
	switch key {
	case "1":
		tab = models.WantToPlayCollection
	case "2":
		tab = models.FinishedCollection
	case "3":
		tab = models.AbandonedCollection
	default:
		return n.State(), false
	}

	state, changed, _ := n.SelectTab(tab)
	return state, changed
}

func (n *Navigator) open(modal *Modal) State {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.state.Modal = modal
	return n.snapshot()
}

func (n *Navigator) snapshot() State {
	state := State{Tab: n.state.Tab}
	if n.state.Modal != nil {
		modal := *n.state.Modal
		modal.Draft = maps.Clone(n.state.Modal.Draft)
		state.Modal = &modal
	}
	return state
}
