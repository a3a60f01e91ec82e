package broker

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"bookstoreMq/internal/modules/catalog/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errNotAnObject = errors.New("message body is not a JSON object")

// EncodeEnvelope renders env as the JSON message body.
func EncodeEnvelope(env domain.Envelope) ([]byte, error) {
	if len(env.Data) == 0 {
		env.Data = []byte("{}")
	}
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return body, nil
}

// DecodeEnvelope parses a message body. Unknown type and operation values are kept.
func DecodeEnvelope(body []byte) (domain.Envelope, error) {
	if json.Get(body).ValueType() != jsoniter.ObjectValue {
		return domain.Envelope{}, errNotAnObject
	}
	var env domain.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}
