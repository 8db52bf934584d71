// internal/models/datauri.go
package models

import (
	"encoding/base64"
	"strings"
)

// EncodeDataURI builds the self-describing image payload stored on an
// Asset: data:<mime>;base64,<bytes>.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// SplitDataURI breaks a stored payload back into its MIME type and raw
// base64 body. A payload without the expected prefix reports ok=false;
// a missing MIME type falls back to image/jpeg.
func SplitDataURI(uri string) (mimeType, data string, ok bool) {
	rest, found := strings.CutPrefix(uri, "data:")
	if !found {
		return "", "", false
	}
	meta, body, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mimeType = strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return mimeType, body, true
}
