package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsInt(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int
		ok    bool
	}{
		{name: "number", value: float64(1927), want: 1927, ok: true},
		{name: "fraction", value: 1942.9, want: 1942, ok: true},
		{name: "numeric string", value: " 1899 ", want: 1899, ok: true},
		{name: "float string", value: "1937.0", want: 1937, ok: true},
		{name: "nil", value: nil},
		{name: "blank", value: "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := AsInt(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAsIntRejectsNonNumbers(t *testing.T) {
	for _, v := range []any{"soon", true, []any{1}} {
		_, ok, err := AsInt(v)
		assert.False(t, ok)
		var numErr *NumberError
		assert.ErrorAs(t, err, &numErr)
	}
}
