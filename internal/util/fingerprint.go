package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Fingerprint computes a stable hash identifying a finding. Whitespace in context is
// normalized so reformatting alone does not change the result.
func Fingerprint(ruleID, file string, start, end int, context string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%d|%s", ruleID, file, start, end, strings.Join(strings.Fields(context), " "))
	return hex.EncodeToString(h.Sum(nil))
}
