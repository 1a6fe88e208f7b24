package frontmatterops

import (
	"errors"
	"strings"

	"git.home.luguber.info/inful/vaultsite/internal/frontmatter"
	"github.com/inful/mdfp"
)

// ComputeFingerprint computes the canonical content fingerprint of a document.
//
// Canonicalization:
//   - excludes the fingerprint field itself
//   - serializes YAML with sorted keys and LF newlines
//   - trims a single trailing newline from the serialized YAML before hashing
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	fieldsForHash := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		fieldsForHash[k] = v
	}

	frontmatterForHash := ""
	if len(fieldsForHash) > 0 {
		serialized, err := frontmatter.SerializeYAML(fieldsForHash, frontmatter.Style{Newline: "\n"})
		if err != nil {
			return "", err
		}
		frontmatterForHash = trimSingleTrailingNewline(string(serialized))
	}

	return mdfp.CalculateFingerprintFromParts(frontmatterForHash, string(body)), nil
}

// Fingerprint reads a whole document and fingerprints it.
func Fingerprint(content []byte) (string, error) {
	fields, body, _, _, err := Read(content)
	if err != nil {
		return "", err
	}
	return ComputeFingerprint(fields, body)
}

// SameContent reports whether two documents share a fingerprint. Documents that
// cannot be parsed never compare equal.
func SameContent(a, b []byte) bool {
	fa, err := Fingerprint(a)
	if err != nil {
		return false
	}
	fb, err := Fingerprint(b)
	if err != nil {
		return false
	}
	return fa == fb
}

func trimSingleTrailingNewline(s string) string {
	if before, ok := strings.CutSuffix(s, "\r\n"); ok {
		return before
	}
	if before, ok := strings.CutSuffix(s, "\n"); ok {
		return before
	}
	return s
}
