package upload

import (
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// MediaTypes is an allow-list of media types. Parameters such as
// ";codecs=opus" are ignored when matching.
type MediaTypes struct {
	allowed []string
}

// NewMediaTypes builds an allow-list. Entries are normalized to lower case
// without parameters.
func NewMediaTypes(types []string) MediaTypes {
	allowed := make([]string, 0, len(types))
	for _, t := range types {
		if mt := normalize(t); mt != "" {
			allowed = append(allowed, mt)
		}
	}
	return MediaTypes{allowed: allowed}
}

// List returns the normalized allow-list.
func (m MediaTypes) List() []string { return m.allowed }

// Allowed reports whether contentType names an allowed media type.
func (m MediaTypes) Allowed(contentType string) bool {
	mt := normalize(contentType)
	for _, a := range m.allowed {
		if mt == a {
			return true
		}
	}
	return false
}

// Resolve returns the media type to check for an upload. A declared type is
// used as is unless it is empty or application/octet-stream, in which case
// the content is sniffed and matched against the allow-list including
// aliases (audio/x-wav, video/webm).
func (m MediaTypes) Resolve(declared string, content io.Reader) string {
	if mt := normalize(declared); mt != "" && mt != octetStream {
		return declared
	}
	detected, err := mimetype.DetectReader(content)
	if err != nil {
		return declared
	}
	for _, a := range m.allowed {
		if detected.Is(a) {
			return a
		}
	}
	return detected.String()
}

func normalize(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
