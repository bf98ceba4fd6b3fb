package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Thumbnail(t *testing.T) {
	assert.Equal(t, PlaceholderThumbnail, Entry{}.Thumbnail())
	assert.Equal(t, PlaceholderThumbnail, Entry{Images: []string{""}}.Thumbnail())
	assert.Equal(t, "https://img/1", Entry{Images: []string{"https://img/1", "https://img/2"}}.Thumbnail())
}

func TestEntry_Summary(t *testing.T) {
	assert.Equal(t, NoDescription, Entry{Description: "  "}.Summary())
	assert.Equal(t, "planner", Entry{Description: "planner"}.Summary())
}

func TestFields_Validate(t *testing.T) {
	ok := Fields{Author: "a", Name: "n", Description: "d", URL: "https://x"}
	require.NoError(t, ok.Validate())

	tests := []struct {
		name   string
		mutate func(*Fields)
		want   string
	}{
		{"author", func(f *Fields) { f.Author = "" }, "author"},
		{"name", func(f *Fields) { f.Name = " " }, "name"},
		{"description", func(f *Fields) { f.Description = "\n" }, "description"},
		{"url", func(f *Fields) { f.URL = "" }, "url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ok
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingField))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEntry_DecodesEndpointShape(t *testing.T) {
	raw := `{"id":"42","name":"Planner","author":"kim","description":"d","url":"https://p",
		"images":["https://drive/1","https://drive/2"],"timestamp":"2025-03-01T10:00:00.000Z"}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, "42", e.ID)
	assert.Equal(t, []string{"https://drive/1", "https://drive/2"}, e.Images)
	assert.Equal(t, "2025-03-01T10:00:00.000Z", e.Timestamp)
}

func TestUpdateRequest_HasNoPasswordOrImages(t *testing.T) {
	b, err := json.Marshal(UpdateRequest{Action: "updateApp", ID: "7", Fields: Fields{Author: "a", Name: "n", Description: "d", URL: "u"}})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "password")
	assert.NotContains(t, m, "images")
	assert.Equal(t, "7", m["id"])
	assert.Equal(t, "n", m["name"])
}
