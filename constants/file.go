package constants

import (
	"path/filepath"
	"strings"
)

// AllowedExtensions holds the upload extensions accepted for expense analysis.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"tiff": {},
}

// ContentTypes maps a normalized extension to the Content-Type stored on the S3 object.
var ContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"tiff": "image/tiff",
}

// NormalizeExt returns the lowercased, dot-free extension of a filename or
// bare extension. "invoice.PDF" and ".pdf" both yield "pdf".
func NormalizeExt(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// IsAllowedExt reports whether the filename's extension is uploadable.
func IsAllowedExt(name string) bool {
	_, ok := AllowedExtensions[NormalizeExt(name)]
	return ok
}

// ContentTypeFor returns the Content-Type for a filename, defaulting to octet-stream.
func ContentTypeFor(name string) string {
	if ct, ok := ContentTypes[NormalizeExt(name)]; ok {
		return ct
	}
	return "application/octet-stream"
}
