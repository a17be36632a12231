package util

import (
	"bytes"
	"testing"
)

func TestIsLikelyHex(t *testing.T) {
	t.Parallel()

	if !IsLikelyHex("deadBEEF") {
		t.Fatalf("expected hex to be detected")
	}
	if IsLikelyHex("abc") {
		t.Fatalf("odd-length string is not hex")
	}
	if IsLikelyHex("zz00") {
		t.Fatalf("non-hex characters must not pass")
	}
}

func TestDecodeHexOrRaw(t *testing.T) {
	t.Parallel()

	got := DecodeHexOrRaw("00ff")
	if !bytes.Equal(got, []byte{0x00, 0xff}) {
		t.Fatalf("hex decode mismatch: %v", got)
	}

	raw := DecodeHexOrRaw("not-hex!")
	if !bytes.Equal(raw, []byte("not-hex!")) {
		t.Fatalf("raw fallback mismatch: %q", raw)
	}
}
