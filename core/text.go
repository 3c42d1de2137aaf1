package core

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText canonicalizes document text for fingerprinting and embedding:
// lowercase, strip HTML-tag-like runs, collapse whitespace, trim.
// Two documents with identical cleaned text are treated as identical content.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = tagPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// FingerprintText returns a deterministic lowercase-hex digest of the cleaned
// text using BLAKE2b-256. Collision resistance here serves change detection,
// not security.
func FingerprintText(text string) string {
	h, _ := blake2b.New(32, nil)
	h.Write([]byte(CleanText(text)))
	return hex.EncodeToString(h.Sum(nil))
}
