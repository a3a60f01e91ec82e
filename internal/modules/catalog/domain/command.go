package domain

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind names the entity collection a command targets.
type Kind string

const (
	KindAuthor    Kind = "author"
	KindPublisher Kind = "publisher"
)

// Operation names the mutation a command requests.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Envelope is the queued write request. It is never modified after publishing.
//
// Type and Operation are kept as plain strings on the wire so that values this
// build does not know about still decode and can be reported as unrecognized.
type Envelope struct {
	Type      Kind            `json:"type"`
	Operation Operation       `json:"operation"`
	Data      json.RawMessage `json:"data"`
}

// DeleteData is the payload of a delete command.
type DeleteData struct {
	ID string `json:"id"`
}

// NewEnvelope serializes payload into a command for the given kind and operation.
func NewEnvelope(kind Kind, op Operation, payload any) (Envelope, error) {
	data, err := codec.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s %s payload: %w", kind, op, err)
	}
	return Envelope{Type: kind, Operation: op, Data: data}, nil
}

// EntityID returns the id carried by the payload, or "" when there is none.
func (e Envelope) EntityID() string {
	if len(e.Data) == 0 {
		return ""
	}
	return codec.Get(e.Data, "id").ToString()
}

// DecodeData unmarshals the payload into dst.
func (e Envelope) DecodeData(dst any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrInvalidPayload)
	}
	if err := codec.Unmarshal(e.Data, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
