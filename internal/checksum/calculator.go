package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vvka-141/fsx/pkg/fsx"
)

// Calculator computes content checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateFile reads path through fsys and computes its checksum.
	CalculateFile(fsys fsx.Filesystem, path string) (string, error)
}

// SHA256 implements Calculator using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content as lowercase hex.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateFile computes SHA-256 of the file at path.
// Read failures are returned unchanged so callers keep the *fsx.Error kind.
func (c SHA256) CalculateFile(fsys fsx.Filesystem, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return c.CalculateRaw(data), nil
}

// SameContent reports whether the files a and b have identical content.
func SameContent(fsys fsx.Filesystem, a, b string) (bool, error) {
	calc := New()

	sumA, err := calc.CalculateFile(fsys, a)
	if err != nil {
		return false, fmt.Errorf("checksum %s: %w", a, err)
	}
	sumB, err := calc.CalculateFile(fsys, b)
	if err != nil {
		return false, fmt.Errorf("checksum %s: %w", b, err)
	}
	return sumA == sumB, nil
}

var _ Calculator = SHA256{}
