package util

import (
	"strings"
	"unicode"
)

// maxFileNameLen bounds sanitized names well below common filesystem limits
// so a timestamp prefix still fits.
const maxFileNameLen = 200

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeEnvValue cleans an environment variable value by removing surrounding
// quotes and trimming whitespace.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}

// SanitizeFileName reduces a client-supplied file name to a safe base name.
// Directory parts are dropped, anything outside [A-Za-z0-9._-] becomes '_'
// and leading dots are removed. An empty result becomes "upload".
func SanitizeFileName(name string) string {
	name = SanitizeString(name)
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.TrimLeft(name, ".")

	if len(name) > maxFileNameLen {
		name = name[len(name)-maxFileNameLen:]
	}
	if name == "" {
		return "upload"
	}
	return name
}
