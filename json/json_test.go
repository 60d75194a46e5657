package json

import (
	"bytes"
	stdjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Length  int     `json:"length" default:"16"`
	Version string  `json:"version" default:"v4"`
	Symbols bool    `json:"symbols"`
	Width   *uint32 `json:"width"`
}

func TestMarshalAppliesDefaults(t *testing.T) {
	req := &testRequest{Version: "v7"}

	data, err := Marshal(req)
	require.NoError(t, err)
	assert.Equal(t, 16, req.Length)

	var decoded testRequest
	require.NoError(t, stdjson.Unmarshal(data, &decoded))
	assert.Equal(t, *req, decoded)
}

func TestUnmarshalAppliesDefaultsForMissingFields(t *testing.T) {
	var req testRequest
	require.NoError(t, Unmarshal([]byte(`{"symbols":true,"width":120}`), &req))

	assert.Equal(t, 16, req.Length)
	assert.Equal(t, "v4", req.Version)
	assert.True(t, req.Symbols)
	require.NotNil(t, req.Width)
	assert.Equal(t, uint32(120), *req.Width)
}

func TestUnmarshalPreservesExplicitValues(t *testing.T) {
	var req testRequest
	require.NoError(t, Unmarshal([]byte(`{"length":0,"version":"v7","width":null}`), &req))

	assert.Equal(t, 0, req.Length)
	assert.Equal(t, "v7", req.Version)
	assert.Nil(t, req.Width)
}

func TestMarshalRejectsNonPointer(t *testing.T) {
	_, err := Marshal(testRequest{})
	assert.Error(t, err)
}

func TestDecoderDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder(bytes.NewReader([]byte(`{"length":8,"unknown":1}`)))
	decoder.DisallowUnknownFields()

	var req testRequest
	assert.Error(t, decoder.Decode(&req))
}

func TestEncoderKeepsSymbolsUnescaped(t *testing.T) {
	type output struct {
		Password string `json:"password"`
	}

	var buf bytes.Buffer
	encoder := NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	require.NoError(t, encoder.Encode(&output{Password: "a<b>&c"}))
	assert.Contains(t, buf.String(), `"password": "a<b>&c"`)
}
