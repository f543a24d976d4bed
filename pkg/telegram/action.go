package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind is the verb part of inline button callback data.
type ActionKind string

const (
	ActionSaveOne  ActionKind = "save-one"
	ActionSaveAll  ActionKind = "save-all"
	ActionEdit     ActionKind = "edit"
	ActionDelete   ActionKind = "delete"
	ActionCancel   ActionKind = "cancel"
	ActionDebtPaid ActionKind = "debt-paid"
)

// Action is a decoded button press. SessionID correlates the press with the
// extraction session that produced the card; Index addresses one draft on a
// multi-draft card (or the transaction id for debt-paid).
type Action struct {
	Kind      ActionKind
	SessionID string
	Index     int
}

// Encode renders the action as callback data: verb:sessionID[:index].
func (a Action) Encode() string {
	switch a.Kind {
	case ActionSaveOne, ActionEdit, ActionDelete, ActionDebtPaid:
		return fmt.Sprintf("%s:%s:%d", a.Kind, a.SessionID, a.Index)
	default:
		return fmt.Sprintf("%s:%s", a.Kind, a.SessionID)
	}
}

// ParseAction decodes callback data produced by Encode.
func ParseAction(data string) (Action, error) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 {
		return Action{}, fmt.Errorf("malformed callback data: %q", data)
	}

	a := Action{Kind: ActionKind(parts[0]), SessionID: parts[1]}

	switch a.Kind {
	case ActionSaveAll, ActionCancel:
		return a, nil
	case ActionSaveOne, ActionEdit, ActionDelete, ActionDebtPaid:
		if len(parts) < 3 {
			return Action{}, fmt.Errorf("missing index in callback data: %q", data)
		}
		idx, err := strconv.Atoi(parts[2])
		if err != nil {
			return Action{}, fmt.Errorf("bad index in callback data %q: %w", data, err)
		}
		a.Index = idx
		return a, nil
	default:
		return Action{}, fmt.Errorf("unknown action %q", parts[0])
	}
}
