package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionRoundTrip(t *testing.T) {
	cases := []Action{
		{Kind: ActionSaveOne, SessionID: "abc", Index: 2},
		{Kind: ActionSaveAll, SessionID: "abc"},
		{Kind: ActionEdit, SessionID: "abc", Index: 0},
		{Kind: ActionDelete, SessionID: "abc", Index: 5},
		{Kind: ActionCancel, SessionID: "abc"},
		{Kind: ActionDebtPaid, SessionID: "-", Index: 1042},
	}

	for _, want := range cases {
		t.Run(string(want.Kind), func(t *testing.T) {
			got, err := ParseAction(want.Encode())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseActionErrors(t *testing.T) {
	for _, data := range []string{
		"",
		"save-all",
		"save-one:abc",
		"edit:abc:x",
		"launch:abc:1",
	} {
		_, err := ParseAction(data)
		assert.Error(t, err, data)
	}
}

func TestEncodeOmitsIndexForWholeCardActions(t *testing.T) {
	assert.Equal(t, "save-all:sid", Action{Kind: ActionSaveAll, SessionID: "sid"}.Encode())
	assert.Equal(t, "save-one:sid:3", Action{Kind: ActionSaveOne, SessionID: "sid", Index: 3}.Encode())
}
