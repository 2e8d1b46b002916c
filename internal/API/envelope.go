package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Envelope is the JSON wrapper every platform endpoint responds with.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination describes the slice of a list endpoint's total result set.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Decode unmarshals the envelope's data payload into v.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(e.Data, v); err != nil {
		return errors.Wrap(err, "decode envelope data")
	}

	return nil
}

// FailureMessage picks the most specific server-supplied failure text.
func (e *Envelope) FailureMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
