package probe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// sniffLen is the longest prefix any signature needs (the JXL ISOBMFF box).
const sniffLen = 12

var (
	jpegSig   = []byte{0xFF, 0xD8, 0xFF}
	pngSig    = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	bmpSig    = []byte{0x42, 0x4D}
	tiffSigLE = []byte{0x49, 0x49, 0x2A, 0x00}
	tiffSigBE = []byte{0x4D, 0x4D, 0x00, 0x2A}
	jxlSig    = []byte{0xFF, 0x0A}
	jxlBoxSig = []byte{0x00, 0x00, 0x00, 0x0C, 0x4A, 0x58, 0x4C, 0x20} // ISOBMFF "JXL " box
)

// rawExtensions is the closed set of camera-raw extensions (lowercase).
var rawExtensions = map[string]bool{
	".dng": true,
	".cr2": true,
	".cr3": true,
	".nef": true,
	".arw": true,
	".orf": true,
	".rw2": true,
	".raf": true,
}

// Detect classifies path by reading at most sniffLen bytes and matching known
// signatures, falling back to the file extension for TGA and camera raw.
// It fails open: any I/O problem or unmatched content yields FormatUnknown.
func Detect(path string) Format {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown
	}
	buf := make([]byte, sniffLen)
	n, _ := f.Read(buf)
	f.Close()

	return DetectHeader(buf[:n], filepath.Ext(path))
}

// DetectHeader matches header against the signature table in priority order,
// then falls back to ext for the magic-less formats. Exported so tests can
// exercise the table without files.
func DetectHeader(header []byte, ext string) Format {
	if len(header) < 2 {
		return FormatUnknown
	}

	switch {
	case bytes.HasPrefix(header, jpegSig):
		return FormatJPEG
	case bytes.HasPrefix(header, pngSig):
		return FormatPNG
	case bytes.HasPrefix(header, bmpSig):
		return FormatBMP
	case bytes.HasPrefix(header, tiffSigLE), bytes.HasPrefix(header, tiffSigBE):
		return FormatTIFF
	case bytes.HasPrefix(header, jxlSig):
		return FormatJXL
	case len(header) >= sniffLen && bytes.HasPrefix(header, jxlBoxSig):
		return FormatJXL
	case header[0] == 'P' && header[1] >= '1' && header[1] <= '6':
		return FormatPNM
	}

	switch ext = strings.ToLower(ext); {
	case ext == ".tga":
		return FormatTGA
	case rawExtensions[ext]:
		return FormatRAW
	}
	return FormatUnknown
}
