package file

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatTIFF Format = "tiff"
	FormatJPG  Format = "jpg"
	FormatJPEG Format = "jpeg"
)

// Document holds the raw bytes of a staged upload together with its declared
// format. It lives only for the duration of extraction.
type Document struct {
	Format Format
	Bytes  []byte
}

// DetectFormat returns the document format declared by the filename
// extension. Anything outside the supported set is rejected before any
// extraction is attempted.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "pdf":
		return FormatPDF, nil
	case "tiff":
		return FormatTIFF, nil
	case "jpg":
		return FormatJPG, nil
	case "jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
