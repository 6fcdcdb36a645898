package metadata

import (
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// VerifyPreserved compares the EXIF tag counts of source and dest and
// returns the percentage of tags that survived migration (0–100, capped).
// A source without EXIF data reports 100. Used only for verbose reporting;
// errors mean "could not verify", not "migration failed".
func VerifyPreserved(source, dest string) (int, error) {
	srcTags, err := countExifTags(source)
	if err != nil {
		return 0, err
	}
	if srcTags == 0 {
		return 100, nil
	}
	dstTags, err := countExifTags(dest)
	if err != nil {
		return 0, err
	}

	pct := dstTags * 100 / srcTags
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}

func countExifTags(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(f, nil, true)
	if err != nil {
		if isNoExif(err) {
			return 0, nil
		}
		return 0, err
	}
	return len(tags), nil
}

func isNoExif(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no exif")
}
