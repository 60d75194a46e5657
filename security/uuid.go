package security

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/leeforge/devkit/errors"
	"github.com/leeforge/devkit/validation"
)

const MaxBulkUUIDs = 100

// UUIDVersion selects the UUID layout.
type UUIDVersion string

const (
	UUIDv4 UUIDVersion = "v4"
	UUIDv7 UUIDVersion = "v7"
)

// ParseUUIDVersion accepts "v4", "4", "v7" or "7" in any case.
func ParseUUIDVersion(s string) (UUIDVersion, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v") {
	case "4":
		return UUIDv4, nil
	case "7":
		return UUIDv7, nil
	default:
		return "", errors.NewInvalidOptions(fmt.Sprintf("Unsupported UUID version: %s", s))
	}
}

// UUIDGenerator produces RFC 9562 UUIDs from an injected entropy source.
type UUIDGenerator struct {
	rand io.Reader
}

// NewUUIDGenerator uses r for randomness; nil means crypto/rand.
func NewUUIDGenerator(r io.Reader) *UUIDGenerator {
	if r == nil {
		r = rand.Reader
	}
	return &UUIDGenerator{rand: r}
}

// V4 returns a random UUID.
func (g *UUIDGenerator) V4() (string, error) {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return "", errors.WrapWithType(err, errors.ErrorTypeInternal, "generate uuid v4").WithCode(errors.CodeInternalError)
	}
	return id.String(), nil
}

// V7 returns a time-ordered UUID. Values from one process sort in
// generation order.
func (g *UUIDGenerator) V7() (string, error) {
	id, err := uuid.NewV7FromReader(g.rand)
	if err != nil {
		return "", errors.WrapWithType(err, errors.ErrorTypeInternal, "generate uuid v7").WithCode(errors.CodeInternalError)
	}
	return id.String(), nil
}

// Generate returns one UUID of the given version.
func (g *UUIDGenerator) Generate(version UUIDVersion) (string, error) {
	switch version {
	case UUIDv4:
		return g.V4()
	case UUIDv7:
		return g.V7()
	default:
		return "", errors.NewInvalidOptions(fmt.Sprintf("Unsupported UUID version: %s", version))
	}
}

// Bulk returns count UUIDs of the given version.
func (g *UUIDGenerator) Bulk(version UUIDVersion, count int) ([]string, error) {
	if err := validation.Var("count", count, fmt.Sprintf("gte=1,lte=%d", MaxBulkUUIDs)); err != nil {
		return nil, err
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := g.Generate(version)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NewV4 returns a random UUID from crypto/rand.
func NewV4() string {
	return uuid.NewString()
}

// NewV7 returns a time-ordered UUID from crypto/rand.
func NewV7() string {
	return uuid.Must(uuid.NewV7()).String()
}
