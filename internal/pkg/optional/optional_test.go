package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Number string `json:"number"`
}

type envelope struct {
	Account Field[account] `json:"account,omitzero"`
}

func TestField_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSet  bool
		wantNull bool
		wantNum  string
	}{
		{"absent", `{}`, false, false, ""},
		{"explicit null", `{"account":null}`, true, true, ""},
		{"value", `{"account":{"number":"123"}}`, true, false, "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e envelope
			require.NoError(t, json.Unmarshal([]byte(tt.input), &e))
			assert.Equal(t, tt.wantSet, e.Account.Set)
			assert.Equal(t, tt.wantNull, e.Account.Null)
			assert.Equal(t, tt.wantNum, e.Account.Value.Number)
		})
	}
}

func TestField_Resolve(t *testing.T) {
	fallback := &account{Number: "snapshot"}

	assert.Same(t, fallback, Field[account]{}.Resolve(fallback))
	assert.Nil(t, Null[account]().Resolve(fallback))

	got := Of(account{Number: "override"}).Resolve(fallback)
	require.NotNil(t, got)
	assert.Equal(t, "override", got.Number)
}

func TestField_Marshal(t *testing.T) {
	out, err := json.Marshal(envelope{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))

	out, err = json.Marshal(envelope{Account: Null[account]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"account":null}`, string(out))

	out, err = json.Marshal(envelope{Account: Of(account{Number: "9"})})
	require.NoError(t, err)
	assert.JSONEq(t, `{"account":{"number":"9"}}`, string(out))
}
