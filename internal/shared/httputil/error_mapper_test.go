package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errMissing = errors.New("missing")
	errGone    = errors.New("gone")
)

func TestErrorMapperMap(t *testing.T) {
	m := NewErrorMapper(
		ErrorMapping{Error: errMissing, Status: http.StatusBadRequest, Message: "missing fields"},
		ErrorMapping{Error: errGone, Status: http.StatusNotFound, Message: "not here"},
	)

	assert.Equal(t, HTTPErrorInfo{Status: http.StatusOK}, m.Map(nil))
	assert.Equal(t, HTTPErrorInfo{Status: http.StatusBadRequest, Message: "missing fields"}, m.Map(fmt.Errorf("wrap: %w", errMissing)))
	assert.Equal(t, HTTPErrorInfo{Status: http.StatusNotFound, Message: "not here"}, m.Map(errGone))
	assert.Equal(t, HTTPErrorInfo{Status: http.StatusInternalServerError, Message: "internal server error"}, m.Map(errors.New("other")))
}

func TestErrorMapperContextErrorsWin(t *testing.T) {
	m := NewErrorMapper(ErrorMapping{Error: errMissing, Status: http.StatusBadRequest, Message: "missing fields"})

	assert.Equal(t, http.StatusGatewayTimeout, m.Map(context.DeadlineExceeded).Status)
	assert.Equal(t, http.StatusServiceUnavailable, m.Map(fmt.Errorf("x: %w", context.Canceled)).Status)
	assert.Equal(t, http.StatusServiceUnavailable, m.Map(errors.Join(errMissing, context.Canceled)).Status)
}

func TestErrorMapperExtendLeavesBaseUntouched(t *testing.T) {
	base := NewErrorMapper(ErrorMapping{Error: errMissing, Status: http.StatusBadRequest, Message: "missing fields"})
	authors := base.Extend(ErrorMapping{Error: errGone, Status: http.StatusNotFound, Message: "author not found"})
	publishers := base.Extend(ErrorMapping{Error: errGone, Status: http.StatusNotFound, Message: "publisher not found"})

	assert.Equal(t, "author not found", authors.Map(errGone).Message)
	assert.Equal(t, "publisher not found", publishers.Map(errGone).Message)
	assert.Equal(t, http.StatusBadRequest, authors.Map(errMissing).Status)
	assert.Equal(t, http.StatusInternalServerError, base.Map(errGone).Status)
}
