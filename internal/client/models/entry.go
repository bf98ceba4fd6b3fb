// Package models defines the gallery entry and the payloads exchanged with
// the Remote Action Endpoint.
package models

import (
	"errors"
	"strings"
)

// PlaceholderThumbnail is shown for entries registered without images.
const PlaceholderThumbnail = "https://picsum.photos/400/225"

// NoDescription is shown when an entry has an empty description.
const NoDescription = "No description provided."

var ErrMissingField = errors.New("required field is empty")

// FieldError names the blank field; it matches ErrMissingField.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + ErrMissingField.Error()
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Entry is one gallery-listed web app record. ID and Timestamp are assigned
// by the endpoint and never changed by the client.
type Entry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Images      []string `json:"images"`
	Timestamp   string   `json:"timestamp"`
}

// Thumbnail returns the first image in display order or the placeholder.
func (e Entry) Thumbnail() string {
	if len(e.Images) > 0 && e.Images[0] != "" {
		return e.Images[0]
	}
	return PlaceholderThumbnail
}

// Summary returns the description or a fallback text.
func (e Entry) Summary() string {
	if strings.TrimSpace(e.Description) == "" {
		return NoDescription
	}
	return e.Description
}

// Fields returns the editable part of the entry.
func (e Entry) Fields() Fields {
	return Fields{Author: e.Author, Name: e.Name, Description: e.Description, URL: e.URL}
}

// Fields are the four free-text attributes an owner may edit.
type Fields struct {
	Author      string `json:"author"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Validate reports the first blank field, in form order.
func (f Fields) Validate() error {
	checks := []struct {
		name  string
		value string
	}{
		{"author", f.Author},
		{"name", f.Name},
		{"description", f.Description},
		{"url", f.URL},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return &FieldError{Field: c.name}
		}
	}
	return nil
}
