package probe

import (
	"encoding/binary"
	"io"
	"os"
)

// TIFF image file directory layout constants.
const (
	tiffHeaderLen  = 8
	ifdEntryLen    = 12
	compressionTag = 259
	maxIFDEntries  = 100 // Bound the scan; malformed counts won't stall us.
)

// Compression tag values per the TIFF 6.0 specification.
var compressionCodes = map[uint16]Compression{
	1:     CompressionNone,
	5:     CompressionLZW,
	7:     CompressionJPEG,
	8:     CompressionDeflate,
	32946: CompressionDeflate, // Legacy deflate code.
}

// TIFFCompression reads the first image file directory of a TIFF and returns
// the compression scheme from tag 259. A directory without the tag is
// uncompressed by convention and yields CompressionNone; any structural read
// shortfall yields CompressionUnknown. It never returns an error: malformed
// and truncated files are expected inputs, not failures.
func TIFFCompression(path string) Compression {
	f, err := os.Open(path)
	if err != nil {
		return CompressionUnknown
	}
	defer f.Close()

	return readTIFFCompression(f)
}

// readTIFFCompression does the actual directory walk against any ReadSeeker.
// Split out so tests can feed crafted byte streams.
func readTIFFCompression(r io.ReadSeeker) Compression {
	header := make([]byte, tiffHeaderLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return CompressionUnknown
	}

	var order binary.ByteOrder = binary.LittleEndian
	if header[0] == 'M' {
		order = binary.BigEndian
	}

	ifdOffset := order.Uint32(header[4:8])
	if _, err := r.Seek(int64(ifdOffset), io.SeekStart); err != nil {
		return CompressionUnknown
	}

	var countBuf [2]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return CompressionUnknown
	}
	count := int(order.Uint16(countBuf[:]))

	entry := make([]byte, ifdEntryLen)
	for i := 0; i < count && i < maxIFDEntries; i++ {
		if _, err := io.ReadFull(r, entry); err != nil {
			return CompressionUnknown
		}
		if order.Uint16(entry[0:2]) != compressionTag {
			continue
		}
		// SHORT value lives in the first two bytes of the value field.
		code := order.Uint16(entry[8:10])
		if c, ok := compressionCodes[code]; ok {
			return c
		}
		return CompressionOther
	}

	// Tag absent: TIFF defaults to uncompressed.
	return CompressionNone
}
