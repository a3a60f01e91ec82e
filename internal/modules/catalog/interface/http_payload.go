package transport

import (
	"encoding/json"
	"fmt"

	"bookstoreMq/internal/shared/normalization"
)

// yearValue accepts a JSON number or a numeric string. Null, "" and 0 count as not sent.
type yearValue struct {
	value int
	set   bool
}

func (y *yearValue) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	n, ok, err := normalization.AsInt(raw)
	if err != nil {
		return fmt.Errorf("year: %w", err)
	}
	y.value, y.set = n, ok && n != 0
	return nil
}

func (y yearValue) ptr() *int {
	if !y.set {
		return nil
	}
	v := y.value
	return &v
}

type authorRequest struct {
	Name      *string   `json:"name"`
	Country   *string   `json:"country"`
	BirthYear yearValue `json:"birthYear"`
}

type publisherRequest struct {
	Name        *string   `json:"name"`
	Country     *string   `json:"country"`
	FoundedYear yearValue `json:"foundedYear"`
}

// AcceptedResponse answers a write that was queued. Data is the pending command
// payload, not the eventual store state.
type AcceptedResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
