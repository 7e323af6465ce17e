package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}

	short := []byte{0xAA}
	if U32LE(short) != 0 || U64LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestPutEndianHelpers(t *testing.T) {
	out := make([]byte, 8)
	if !PutU32LE(out, 0xdeadbeef) {
		t.Fatalf("PutU32LE should fit in 8 bytes")
	}
	if got := U32LE(out); got != 0xdeadbeef {
		t.Fatalf("round trip U32 = 0x%x", got)
	}
	if !PutU64LE(out, 0x0102030405060708) {
		t.Fatalf("PutU64LE should fit in 8 bytes")
	}
	if out[0] != 0x08 || out[7] != 0x01 {
		t.Fatalf("PutU64LE wrote wrong byte order: %x", out)
	}
	if PutU32LE(out[:3], 1) || PutU64LE(out[:7], 1) {
		t.Fatalf("short writes should report false")
	}
}
