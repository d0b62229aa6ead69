package hashutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/rohmanhakim/amp-sanitizer/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func TestHashBytes_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		algo     hashutil.HashAlgo
		input    string
		expected string
	}{
		{
			name:     "sha256 empty",
			algo:     hashutil.HashAlgoSHA256,
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "sha256 abc",
			algo:     hashutil.HashAlgoSHA256,
			input:    "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:     "blake3 empty",
			algo:     hashutil.HashAlgoBLAKE3,
			input:    "",
			expected: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:     "blake3 abc",
			algo:     hashutil.HashAlgoBLAKE3,
			input:    "abc",
			expected: "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := hashutil.HashBytes([]byte(tt.input), tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHashBytes_UnsupportedAlgorithm(t *testing.T) {
	result, err := hashutil.HashBytes([]byte("test data"), "md5")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported hash algorithm")
	assert.Empty(t, result)
	assert.False(t, hashutil.IsSupported("md5"))
	assert.True(t, hashutil.IsSupported(hashutil.HashAlgoBLAKE3))
}

func TestSignature_MatchesBlake3(t *testing.T) {
	data := []byte(`{"TagName":"amp-sidebar","Unique":true}`)
	sum := blake3.Sum256(data)

	assert.Equal(t, hex.EncodeToString(sum[:]), hashutil.Signature(data))
	assert.Equal(t, hashutil.Signature(data), hashutil.Signature(data))
	assert.NotEqual(t, hashutil.Signature(data), hashutil.Signature([]byte("other")))
}

func TestShort(t *testing.T) {
	digest := hashutil.Signature([]byte("page"))

	assert.Len(t, hashutil.Short(digest, 12), 12)
	assert.Equal(t, digest[:12], hashutil.Short(digest, 12))
	assert.Equal(t, "abc", hashutil.Short("abc", 12))
	assert.Equal(t, digest, hashutil.Short(digest, 0))
}
