package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImages_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Images
	}{
		{name: "array", in: `["u1","u2"]`, want: Images{"u1", "u2"}},
		{name: "json string", in: `"[\"u1\",\"u2\"]"`, want: Images{"u1", "u2"}},
		{name: "single url", in: `"https://example.com/a.jpg"`, want: Images{"https://example.com/a.jpg"}},
		{name: "empty string", in: `""`, want: Images{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Images
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestImages_UnmarshalJSONRejectsOtherTypes(t *testing.T) {
	var got Images
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
	assert.Error(t, json.Unmarshal([]byte(`"[not json"`), &got))
}

func TestImages_ValueAndScan(t *testing.T) {
	v, err := Images(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = Images{"a", "b"}.Value()
	require.NoError(t, err)

	var back Images
	require.NoError(t, back.Scan(v))
	assert.Equal(t, Images{"a", "b"}, back)

	require.NoError(t, back.Scan([]byte(`["c"]`)))
	assert.Equal(t, Images{"c"}, back)

	require.NoError(t, back.Scan(nil))
	assert.Equal(t, Images{}, back)

	assert.Error(t, back.Scan(3.14))
}

func TestNotFoundError_Is(t *testing.T) {
	err := NotFoundError{Resource: "car"}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "car not found", err.Error())
	assert.Equal(t, "not found", ErrNotFound.Error())
}
