package models

import "encoding/json"

// ImagePayload is one screenshot encoded for transmission. Base64 holds the
// raw standard encoding, without a data-URL prefix.
type ImagePayload struct {
	Base64 string `json:"base64"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

// Response is the envelope every endpoint action answers with.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RegisterRequest creates an entry and uploads its images in one call.
type RegisterRequest struct {
	Action string `json:"action"`
	Fields
	Password string         `json:"password"`
	Images   []ImagePayload `json:"images"`
}

// UpdateRequest replaces the editable fields of an entry. It has no
// password or images member on purpose; the wire shape must not carry them.
type UpdateRequest struct {
	Action string `json:"action"`
	ID     string `json:"id"`
	Fields
}

// CredentialRequest is shared by deleteApp and verifyPassword.
type CredentialRequest struct {
	Action   string `json:"action"`
	ID       string `json:"id"`
	Password string `json:"password"`
}
