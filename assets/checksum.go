package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm is a content checksum hash algorithm.
type Algorithm string

const (
	AlgorithmMD5    Algorithm = "md5"
	AlgorithmSHA1   Algorithm = "sha1"
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmSHA512 Algorithm = "sha512"
)

// hexDigestLengths maps the length of a hex digest to its hash algorithm.
var hexDigestLengths = map[int]Algorithm{
	32:  AlgorithmMD5,
	40:  AlgorithmSHA1,
	64:  AlgorithmSHA256,
	128: AlgorithmSHA512,
}

var (
	// ErrChecksumLength is returned when a digest length does not match any known algorithm.
	ErrChecksumLength = errors.New("checksum length does not match a known hash algorithm")

	// ErrChecksumCharset is returned when a digest contains non-hexadecimal characters.
	ErrChecksumCharset = errors.New("checksum must be a hexadecimal string")
)

// Checksum is a fixed-length, lowercase hexadecimal content digest.
// The hash algorithm is inferred from the digest length.
type Checksum string

// ParseChecksum validates the supplied digest and normalizes it to lower case.
func ParseChecksum(s string) (Checksum, error) {
	c := Checksum(strings.ToLower(s))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Algorithm returns the hash algorithm inferred from the digest length.
func (c Checksum) Algorithm() (Algorithm, error) {
	alg, ok := hexDigestLengths[len(c)]
	if !ok {
		return "", fmt.Errorf("%w: length %d", ErrChecksumLength, len(c))
	}
	return alg, nil
}

// Validate checks that the digest has a known length and a hexadecimal charset.
func (c Checksum) Validate() error {
	if _, err := c.Algorithm(); err != nil {
		return err
	}
	for _, r := range c {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			continue
		}
		return fmt.Errorf("%w: invalid character %q", ErrChecksumCharset, r)
	}
	return nil
}

// String returns the digest.
func (c Checksum) String() string {
	return string(c)
}

// GetterString returns the digest in the `algorithm:digest` form used by
// go-getter's checksum query parameter.
func (c Checksum) GetterString() (string, error) {
	alg, err := c.Algorithm()
	if err != nil {
		return "", err
	}
	return string(alg) + ":" + string(c), nil
}
