package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstoreMq/internal/modules/catalog/domain"
)

func TestEncodeEnvelopeWireFormat(t *testing.T) {
	env, err := domain.NewEnvelope(domain.KindPublisher, domain.OperationDelete, domain.DeleteData{ID: "99"})
	require.NoError(t, err)

	body, err := EncodeEnvelope(env)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"publisher","operation":"delete","data":{"id":"99"}}`, string(body))
}

func TestEncodeEnvelopeWithoutData(t *testing.T) {
	body, err := EncodeEnvelope(domain.Envelope{Type: domain.KindAuthor, Operation: domain.OperationDelete})
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"author","operation":"delete","data":{}}`, string(body))
}

func TestDecodeEnvelopeKeepsUnknownValues(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"type":"magazine","operation":"archive","data":{"id":"m1"}}`))
	require.NoError(t, err)

	assert.Equal(t, domain.Kind("magazine"), env.Type)
	assert.Equal(t, domain.Operation("archive"), env.Operation)
	assert.Equal(t, "m1", env.EntityID())
}

func TestDecodeEnvelopeRejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `not json`, `[]`, `"text"`, `42`} {
		_, err := DecodeEnvelope([]byte(body))
		assert.Error(t, err, "body %q", body)
	}
}
