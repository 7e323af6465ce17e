package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	require.Equal(t, "0", Count(0))
	require.Equal(t, "999", Count(999))
	require.Equal(t, "1,000", Count(1000))
	require.Equal(t, "1,234,567", Count(int64(1234567)))
	require.Equal(t, "-12,345", Count(int32(-12345)))
	require.Equal(t, "4,294,967,295", Count(uint32(4294967295)))
}

func TestRate(t *testing.T) {
	require.Equal(t, "12,346/s", Rate(12345.6))
	require.Equal(t, "0/s", Rate(0))
}

func TestBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Bytes(tc.in), "Bytes(%d)", tc.in)
	}
}
