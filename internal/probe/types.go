package probe

// Format identifies a source image format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG           // Lossy source; eligible for reversible transcode.
	FormatPNG
	FormatBMP
	FormatTIFF // Eligibility depends on the container's compression tag.
	FormatTGA  // No magic; matched by extension.
	FormatPNM  // PPM/PGM/PBM family.
	FormatRAW  // Camera raw; always skipped.
	FormatJXL  // Already converted.
)

var formatNames = map[Format]string{
	FormatUnknown: "Unknown",
	FormatJPEG:    "JPEG",
	FormatPNG:     "PNG",
	FormatBMP:     "BMP",
	FormatTIFF:    "TIFF",
	FormatTGA:     "TGA",
	FormatPNM:     "PPM/PGM/PBM",
	FormatRAW:     "RAW",
	FormatJXL:     "JXL",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "Unknown"
}

// LosslessSource reports whether f stores pixel data without loss, making it
// a candidate for mathematically lossless re-encoding. TIFF is excluded here
// because its eligibility depends on the compression tag.
func (f Format) LosslessSource() bool {
	switch f {
	case FormatPNG, FormatBMP, FormatTGA, FormatPNM:
		return true
	}
	return false
}

// Compression is the TIFF compression scheme from directory tag 259.
type Compression int

const (
	CompressionUnknown Compression = iota // Structural read failure.
	CompressionNone
	CompressionLZW
	CompressionJPEG // Already lossy inside the container.
	CompressionDeflate
	CompressionOther
)

var compressionNames = map[Compression]string{
	CompressionUnknown: "unknown",
	CompressionNone:    "none",
	CompressionLZW:     "lzw",
	CompressionJPEG:    "jpeg",
	CompressionDeflate: "deflate",
	CompressionOther:   "other",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return "unknown"
}
