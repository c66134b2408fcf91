package assets

import (
	"net/http"
)

// AllowedTypes are the image formats accepted for upload.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8). http.DetectContentType does not recognise it.
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// DetectImage sniffs the content type from magic bytes. The client supplied
// Content-Type is never trusted.
func DetectImage(data []byte) (mimeType string, ok bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mimeType = http.DetectContentType(data)
	_, ok = extensions[mimeType]
	return mimeType, ok
}
