package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectHeader_Signatures(t *testing.T) {
	cases := []struct {
		name   string
		header []byte
		ext    string
		want   Format
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, ".jpg", FormatJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, ".png", FormatPNG},
		{"bmp", []byte{'B', 'M', 0x36, 0x00}, ".bmp", FormatBMP},
		{"tiff le", []byte{'I', 'I', 0x2A, 0x00}, ".tif", FormatTIFF},
		{"tiff be", []byte{'M', 'M', 0x00, 0x2A}, ".tif", FormatTIFF},
		{"jxl codestream", []byte{0xFF, 0x0A}, ".jxl", FormatJXL},
		{"jxl container", []byte{0x00, 0x00, 0x00, 0x0C, 'J', 'X', 'L', ' ', 0x0D, 0x0A, 0x87, 0x0A}, ".jxl", FormatJXL},
		{"ppm", []byte{'P', '6', '\n'}, ".ppm", FormatPNM},
		{"pbm", []byte{'P', '1', '\n'}, ".pbm", FormatPNM},
		{"pgm", []byte{'P', '5', '\n'}, ".pgm", FormatPNM},
		{"p7 is not pnm", []byte{'P', '7', '\n'}, "", FormatUnknown},
		{"tga by extension", []byte{0x00, 0x00, 0x02, 0x00}, ".tga", FormatTGA},
		{"tga uppercase extension", []byte{0x00, 0x00, 0x02, 0x00}, ".TGA", FormatTGA},
		{"raw dng", []byte{0x00, 0x01}, ".dng", FormatRAW},
		{"raw cr3", []byte{0x00, 0x01}, ".cr3", FormatRAW},
		{"raw nef", []byte{0x00, 0x01}, ".NEF", FormatRAW},
		{"unmatched", []byte{0x12, 0x34, 0x56}, ".xyz", FormatUnknown},
		{"empty", nil, ".jpg", FormatUnknown},
		{"one byte", []byte{0xFF}, ".jpg", FormatUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectHeader(tc.header, tc.ext); got != tc.want {
				t.Errorf("DetectHeader(%v, %q) = %v, want %v", tc.header, tc.ext, got, tc.want)
			}
		})
	}
}

func TestDetectHeader_SignatureBeatsExtension(t *testing.T) {
	// A JPEG renamed to .dng is still a JPEG: signatures win.
	header := []byte{0xFF, 0xD8, 0xFF, 0xE1}
	if got := DetectHeader(header, ".dng"); got != FormatJPEG {
		t.Errorf("got %v, want %v", got, FormatJPEG)
	}
}

func TestDetect_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Detect(path); got != FormatPNG {
		t.Errorf("Detect = %v, want %v", got, FormatPNG)
	}
}

func TestDetect_MissingFile(t *testing.T) {
	if got := Detect(filepath.Join(t.TempDir(), "nope.png")); got != FormatUnknown {
		t.Errorf("Detect on missing file = %v, want Unknown", got)
	}
}

func TestDetect_TinyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.jpg")
	if err := os.WriteFile(path, []byte{0xFF}, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Detect(path); got != FormatUnknown {
		t.Errorf("Detect on 1-byte file = %v, want Unknown", got)
	}
}

func TestFormat_String(t *testing.T) {
	if Format(99).String() != "Unknown" {
		t.Error("out-of-range format should stringify as Unknown")
	}
	if FormatPNM.String() != "PPM/PGM/PBM" {
		t.Errorf("got %q", FormatPNM.String())
	}
}
