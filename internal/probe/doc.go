// Package probe classifies image files by content. It sniffs a bounded byte
// prefix for known format signatures (with an extension fallback for the
// magic-less formats) and, for TIFF, parses the image file directory to
// extract the compression scheme without decoding any pixel data.
package probe
