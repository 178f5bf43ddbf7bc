package enums

import "fmt"

// MediaType distinguishes the primary gallery image from the rest.
type MediaType string

const (
	MediaTypePrimary MediaType = "primary"
	MediaTypeGallery MediaType = "gallery"
)

var validMediaTypes = []MediaType{
	MediaTypePrimary,
	MediaTypeGallery,
}

// String implements fmt.Stringer.
func (m MediaType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MediaType.
func (m MediaType) IsValid() bool {
	for _, candidate := range validMediaTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaType converts raw input into a MediaType.
func ParseMediaType(value string) (MediaType, error) {
	for _, candidate := range validMediaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q", value)
}
