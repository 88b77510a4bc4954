package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is the lowercase hex SHA-1 of an object's content. Blobs and
// commits share this address space.
// Example: "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"
type Digest string

const (
	// DigestLength is the length of a digest in hex characters.
	DigestLength = 40
	// ShortLength is the abbreviation used for display.
	ShortLength = 7
)

// Sum computes the digest of data.
func Sum(data []byte) Digest {
	sum := sha1.Sum(data)
	return Digest(hex.EncodeToString(sum[:]))
}

// ParseDigest validates s and returns it in canonical lowercase form.
func ParseDigest(s string) (Digest, error) {
	d := Digest(strings.ToLower(strings.TrimSpace(s)))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Digest) String() string {
	return string(d)
}

// IsZero reports whether d is the empty digest ("no commit").
func (d Digest) IsZero() bool {
	return d == ""
}

// IsValid reports whether d is a well-formed digest.
func (d Digest) IsValid() bool {
	return d.Validate() == nil
}

// Validate checks length and alphabet. Uppercase hex is rejected so that
// one object never has two spellings.
func (d Digest) Validate() error {
	if len(d) != DigestLength {
		return fmt.Errorf("digest must be %d characters long, got %d", DigestLength, len(d))
	}
	for _, c := range d {
		if !isLowerHex(c) {
			return fmt.Errorf("digest must contain only lowercase hex characters, found '%c'", c)
		}
	}
	return nil
}

// Short returns the display abbreviation.
func (d Digest) Short() string {
	if len(d) >= ShortLength {
		return string(d[:ShortLength])
	}
	return string(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects malformed
// digests, so JSON records are validated while decoding.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func isLowerHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
