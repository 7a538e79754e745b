package errors

import "unicode"

// ValidateNodeID validates a node identifier received at the service
// boundary. The validator core never rejects input - these checks exist so
// the transport layer can report obviously broken payloads (injection
// attempts, binary garbage) with a useful code instead of silently carrying
// them through.
//
// The rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNodeID, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node id contains control characters")
		}
	}

	return nil
}

// ValidateConfigPath validates a config file path supplied on the command
// line. It rejects empty paths and embedded null bytes; existence is checked
// by the loader, which can report a more specific error.
func ValidateConfigPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidConfig, "config path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidConfig, "config path contains invalid characters")
		}
	}
	return nil
}
