package httputil

import (
	"context"
	"errors"
	"net/http"
	"slices"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// HTTPErrorInfo is the status and message an error resolves to.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping ties one sentinel, matched with errors.Is, to a response.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// Context errors resolve the same way for every mapper and win over its own mappings.
var contextMappings = []ErrorMapping{
	{Error: context.DeadlineExceeded, Status: http.StatusGatewayTimeout, Message: "request timeout"},
	{Error: context.Canceled, Status: http.StatusServiceUnavailable, Message: "request cancelled"},
}

var internalError = HTTPErrorInfo{Status: http.StatusInternalServerError, Message: "internal server error"}

// ErrorMapper resolves errors against an ordered list of mappings. Unmatched
// errors become 500 "internal server error". A mapper is immutable once built.
type ErrorMapper struct {
	mappings []ErrorMapping
}

func NewErrorMapper(mappings ...ErrorMapping) *ErrorMapper {
	return &ErrorMapper{mappings: append(slices.Clone(contextMappings), mappings...)}
}

// Extend returns a new mapper that checks m's mappings first, then the extra ones.
func (m *ErrorMapper) Extend(mappings ...ErrorMapping) *ErrorMapper {
	return &ErrorMapper{mappings: append(slices.Clone(m.mappings), mappings...)}
}

func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}
	return internalError
}
