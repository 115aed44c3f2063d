// Package util holds small, dependency-bearing helpers shared by the rest
// of the module: content hashing for verdictdb cache keys, and a unified
// diff renderer for debug output.
package util

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SHA1Hex computes the SHA1 hash of a byte slice and returns it as a hex
// string. Used to turn serialized query/variant text into cache keys.
func SHA1Hex(b []byte) string {
	h := sha1.Sum(b)
	return hex.EncodeToString(h[:])
}

// SHA1FileHex computes the SHA1 hash of a file's content, returning "" if
// the file cannot be read.
func SHA1FileHex(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return SHA1Hex(b)
}

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

// UnifiedDiff renders a unified diff between two text blocks, optionally
// ANSI-colored. It is a debug convenience only — never used on any path
// that decides match().
func UnifiedDiff(fromLabel, toLabel, from, to string, context int, color bool) string {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}

	if !color {
		return text
	}

	var sb strings.Builder
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if i == len(lines)-1 && l == "" {
			continue
		}
		switch {
		case strings.HasPrefix(l, "+"):
			sb.WriteString(colorGreen + l + colorReset + "\n")
		case strings.HasPrefix(l, "-"):
			sb.WriteString(colorRed + l + colorReset + "\n")
		case strings.HasPrefix(l, "@"):
			sb.WriteString(colorCyan + l + colorReset + "\n")
		default:
			sb.WriteString(l + "\n")
		}
	}
	return sb.String()
}
