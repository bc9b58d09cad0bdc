package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// MaxPayloadLen is how much of a stored value or request payload is kept in
// a log line.
const MaxPayloadLen = 64

const redactedValue = "***REDACTED***"

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"auth",
	"credential",
	"token",
}

// Attribute keys that may carry client data of any size.
var payloadKeys = map[string]bool{
	"value":       true,
	"payload":     true,
	"description": true,
}

func rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			rewritten[i] = rewriteAttr(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if IsSensitiveKey(a.Key) {
		if s := attrString(a); s != "" {
			return slog.String(a.Key, redactedValue)
		}
		return a
	}

	if payloadKeys[strings.ToLower(a.Key)] {
		if s := attrString(a); len(s) > MaxPayloadLen {
			return slog.String(a.Key, Truncate(s))
		}
	}
	return a
}

// attrString returns the attribute as text for strings and byte slices.
func attrString(a slog.Attr) string {
	switch a.Value.Kind() {
	case slog.KindString:
		return a.Value.String()
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case []byte:
			return string(v)
		case fmt.Stringer:
			return v.String()
		}
	}
	return ""
}

// Truncate shortens s to MaxPayloadLen bytes and notes how much was cut.
func Truncate(s string) string {
	if len(s) <= MaxPayloadLen {
		return s
	}
	return fmt.Sprintf("%s...(%d more bytes)", s[:MaxPayloadLen], len(s)-MaxPayloadLen)
}

// IsSensitiveKey reports whether a key name suggests a secret.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
