package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryInput_IsEmpty(t *testing.T) {
	assert.True(t, EntryInput{}.IsEmpty())

	title := "t"
	assert.False(t, EntryInput{Title: &title}.IsEmpty())

	empty := ""
	assert.False(t, EntryInput{Image: &empty}.IsEmpty())
}

func TestEntryInput_OmitsUnsetFields(t *testing.T) {
	text := ""
	b, err := json.Marshal(EntryInput{Text: &text})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":""}`, string(b))
}

func TestEntry_String(t *testing.T) {
	e := Entry{ID: "42", Title: "Rain", Writer: "ann", Date: "2024-05-01"}
	assert.Equal(t, `42  2024-05-01  "Rain" by ann`, e.String())
}
