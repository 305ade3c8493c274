package common

import (
	"fmt"

	"github.com/vincent-petithory/dataurl"
)

// EncodeDataURL wraps binary content and its MIME type into a
// self-contained base64 data URL.
func EncodeDataURL(mimeType string, data []byte) string {
	return dataurl.New(data, mimeType).String()
}

// DecodeDataURL parses a data URL back into its MIME type and raw bytes.
func DecodeDataURL(s string) (string, []byte, error) {
	du, err := dataurl.DecodeString(s)
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL: %w", err)
	}
	return du.ContentType(), du.Data, nil
}
