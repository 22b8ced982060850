package errors

import (
	"strings"
	"unicode"
)

// MaxPayloadBytes is the largest payload accepted for encoding. It matches the
// byte-mode capacity of a version 40 symbol at the lowest recovery level.
const MaxPayloadBytes = 2953

// ValidatePayload validates a QR payload before it reaches the encoder.
//
// The validation rules are:
//   - No empty payloads
//   - No null bytes
//   - Maximum length of MaxPayloadBytes bytes
func ValidatePayload(payload string) error {
	if payload == "" {
		return New(ErrCodeInvalidInput, "payload cannot be empty")
	}

	if len(payload) > MaxPayloadBytes {
		return New(ErrCodeInvalidInput, "payload too long (%d bytes, max %d)", len(payload), MaxPayloadBytes)
	}

	if strings.ContainsRune(payload, '\x00') {
		return New(ErrCodeInvalidInput, "payload contains a null byte")
	}

	return nil
}

// ValidatePath validates a font or image asset path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateRelativePath is ValidatePath plus the restrictions needed when the
// path is resolved inside a sandboxed asset directory.
//
// Additional rules:
//   - No absolute paths
//   - No path traversal sequences (..)
//   - No backslashes
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed map[string]bool) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !allowed[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
	return nil
}
