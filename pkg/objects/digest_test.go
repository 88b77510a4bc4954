package objects

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_KnownVectors(t *testing.T) {
	assert.Equal(t, Digest("da39a3ee5e6b4b0d3255bfef95601890afd80709"), Sum(nil))
	assert.Equal(t, Digest("2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"), Sum([]byte("hello world")))
}

func TestSum_Deterministic(t *testing.T) {
	a := Sum([]byte("hello\n"))
	b := Sum([]byte("hello\n"))
	c := Sum([]byte("hello\nworld\n"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, a.IsValid())
}

func TestParseDigest(t *testing.T) {
	valid := "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"

	tests := []struct {
		name    string
		in      string
		want    Digest
		wantErr bool
	}{
		{name: "canonical", in: valid, want: Digest(valid)},
		{name: "uppercase folded", in: strings.ToUpper(valid), want: Digest(valid)},
		{name: "surrounding space", in: " " + valid + "\n", want: Digest(valid)},
		{name: "too short", in: valid[:39], wantErr: true},
		{name: "non hex", in: "z" + valid[1:], wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDigest(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDigest_ValidateRejectsUppercase(t *testing.T) {
	d := Digest(strings.ToUpper("2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"))
	assert.Error(t, d.Validate())
}

func TestDigest_Short(t *testing.T) {
	assert.Equal(t, "2aae6c3", Digest("2aae6c35c94fcfb415dbe95f408b9ce91ee846ed").Short())
	assert.Equal(t, "abc", Digest("abc").Short())
	assert.True(t, Digest("").IsZero())
}

func TestDigest_JSONValidatesOnDecode(t *testing.T) {
	var holder struct {
		D Digest `json:"d"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"d":"2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"}`), &holder))
	assert.Equal(t, Digest("2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"), holder.D)

	assert.Error(t, json.Unmarshal([]byte(`{"d":"nope"}`), &holder))
}

func TestCompressRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("hello\n"),
		[]byte(strings.Repeat("line of text\n", 500)),
	}

	for _, level := range []int{NoCompression, BestSpeed, DefaultCompression, BestCompression} {
		for _, in := range inputs {
			compressed, err := Compress(in, level)
			require.NoError(t, err)

			out, err := Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, len(in), len(out))
			assert.Equal(t, string(in), string(out))
		}
	}
}

func TestCompress_InvalidLevel(t *testing.T) {
	_, err := Compress([]byte("x"), 42)
	assert.Error(t, err)
	assert.False(t, ValidCompressionLevel(-5))
}

func TestDecompress_Garbage(t *testing.T) {
	_, err := Decompress([]byte("definitely not zlib"))
	assert.Error(t, err)
}
