package security

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/leeforge/devkit/errors"
)

// HashAlgorithm names a supported digest.
type HashAlgorithm string

const (
	MD5    HashAlgorithm = "md5"
	SHA256 HashAlgorithm = "sha256"
	SHA512 HashAlgorithm = "sha512"
)

var hashConstructors = map[HashAlgorithm]func() hash.Hash{
	MD5:    md5.New,
	SHA256: sha256.New,
	SHA512: sha512.New,
}

// HashAlgorithms lists the supported algorithms in display order.
func HashAlgorithms() []HashAlgorithm {
	return []HashAlgorithm{MD5, SHA256, SHA512}
}

// ParseHashAlgorithm matches name case-insensitively.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	algo := HashAlgorithm(strings.ToLower(name))
	if _, ok := hashConstructors[algo]; !ok {
		return "", errors.NewInvalidOptions(fmt.Sprintf("Unsupported algorithm: %s", name)).
			WithDetail("algorithm", name)
	}
	return algo, nil
}

// Hash returns the lowercase hex digest of the UTF-8 bytes of text.
func Hash(text, algorithm string) (string, error) {
	algo, err := ParseHashAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	return digest(algo, text), nil
}

// HashResult pairs an algorithm with the digest it produced.
type HashResult struct {
	Algorithm HashAlgorithm `json:"algorithm"`
	Digest    string        `json:"digest"`
}

// HashAll digests text with every supported algorithm.
func HashAll(text string) []HashResult {
	algos := HashAlgorithms()
	results := make([]HashResult, 0, len(algos))
	for _, algo := range algos {
		results = append(results, HashResult{Algorithm: algo, Digest: digest(algo, text)})
	}
	return results
}

func digest(algo HashAlgorithm, text string) string {
	h := hashConstructors[algo]()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
