package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// DatasetFingerprint identifies a dataset by its statistical content
type DatasetFingerprint Hash

func NewDatasetFingerprint(data []byte) DatasetFingerprint {
	return DatasetFingerprint(NewHash(data))
}

func (h DatasetFingerprint) String() string { return Hash(h).String() }

// ComputeDatasetFingerprint derives a stable fingerprint from observed times
// and the unit label. Values are canonicalized by sorting, so permutations of
// the same sample share a fingerprint.
func ComputeDatasetFingerprint(failures, censored []float64, timeUnit string) DatasetFingerprint {
	f := append([]float64(nil), failures...)
	c := append([]float64(nil), censored...)
	sort.Float64s(f)
	sort.Float64s(c)

	var data strings.Builder
	data.WriteString(timeUnit)
	for _, v := range f {
		data.WriteString("|f")
		data.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, v := range c {
		data.WriteString("|c")
		data.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return NewDatasetFingerprint([]byte(data.String()))
}
