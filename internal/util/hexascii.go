package util

import (
	"encoding/hex"
	"strings"
)

func IsLikelyHex(s string) bool {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
	if len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// DecodeHexOrRaw decodes a hex string, falling back to the raw bytes when the
// input is not valid hex. Legacy credential rows stored salts both ways.
func DecodeHexOrRaw(s string) []byte {
	t := strings.TrimSpace(s)
	if IsLikelyHex(t) {
		b, err := hex.DecodeString(strings.ReplaceAll(t, " ", ""))
		if err == nil {
			return b
		}
	}
	return []byte(s)
}
