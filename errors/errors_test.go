package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode string
		wantMsg  string
	}{
		{"invalid extension", NewInvalidExtension("photo"), ErrorTypeInvalidExtension, CodeInvalidExtension, "Invalid file extension"},
		{"unsupported format", NewUnsupportedFormat("xyz"), ErrorTypeUnsupportedFormat, CodeUnsupportedFormat, "Unsupported format: xyz"},
		{"decode", NewDecode("in.png", io.ErrUnexpectedEOF), ErrorTypeDecode, CodeDecodeFailed, "failed to decode in.png: unexpected EOF"},
		{"encode", NewEncode("out.ico", io.ErrShortWrite), ErrorTypeEncode, CodeEncodeFailed, "failed to encode out.ico: short write"},
		{"invalid options", NewInvalidOptions("bad"), ErrorTypeInvalidOptions, CodeInvalidOptions, "bad"},
		{"internal", NewInternal("boom"), ErrorTypeInternal, CodeInternalError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestWrappedCauseIsReachable(t *testing.T) {
	err := NewDecode("missing.png", io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestIsTypeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("resize: %w", NewUnsupportedFormat("psd"))

	assert.True(t, IsType(wrapped, ErrorTypeUnsupportedFormat))
	assert.False(t, IsType(wrapped, ErrorTypeDecode))
	assert.False(t, IsType(nil, ErrorTypeDecode))
	assert.True(t, errors.Is(wrapped, &AppError{Type: ErrorTypeUnsupportedFormat}))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(io.EOF)
	require.NotNil(t, plain)
	assert.Equal(t, ErrorTypeUnknown, plain.Type)
	assert.Equal(t, "EOF", plain.Error())

	original := NewInvalidOptions("nope")
	assert.Same(t, original, FromError(fmt.Errorf("ctx: %w", original)))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, NewInvalidOptions("x").ExitCode())
	assert.Equal(t, 2, NewInvalidExtension("x").ExitCode())
	assert.Equal(t, 3, NewDecode("x", io.EOF).ExitCode())
	assert.Equal(t, 1, NewInternal("x").ExitCode())
}

func TestErrorFormatter(t *testing.T) {
	err := NewDecode("a.png", io.EOF).WithDetail("attempt", 1)

	plain := NewErrorFormatter(false).Format(err)
	assert.Equal(t, "[decode] failed to decode a.png: EOF | code=DECODE_FAILED | attempt=1 | path=a.png", plain)

	verbose := NewErrorFormatter(true).Format(err)
	assert.Contains(t, verbose, "caused_by: EOF")

	assert.Empty(t, NewErrorFormatter(true).Format(nil))
}
