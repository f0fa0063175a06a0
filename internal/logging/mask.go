package logging

import (
	"log/slog"
	"strings"
)

// MaskChar is the character used for masking.
const MaskChar = "*"

// SensitiveFields contains field names whose values never reach the log.
var SensitiveFields = map[string]bool{
	"password":       true,
	"morse":          true,
	"morse_code":     true,
	"key":            true,
	"letter_key":     true,
	"decryption_key": true,
	"secret":         true,
	"token":          true,
}

// MaskSecret masks a secret completely, keeping only a hint of its length.
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	return strings.Repeat(MaskChar, min(len(value), 8))
}

// IsSensitiveField checks if a field name indicates a secret.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	if SensitiveFields[lower] {
		return true
	}
	for keyword := range SensitiveFields {
		if len(keyword) > 3 && strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// maskAttr is installed as the slog ReplaceAttr hook on every handler.
func maskAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString && IsSensitiveField(a.Key) {
		return slog.String(a.Key, MaskSecret(a.Value.String()))
	}
	return a
}
