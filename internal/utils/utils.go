package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new point records
type IDGenerator interface {
	NewID() (string, error)
}

// RangeIDGenerator draws a uniformly distributed integer in [Min, Max)
// and formats it in base 10.
type RangeIDGenerator struct {
	Min int64
	Max int64
}

// NewID generates an identifier
func (g RangeIDGenerator) NewID() (string, error) {
	if g.Min >= g.Max {
		return "", fmt.Errorf("invalid id range [%d, %d)", g.Min, g.Max)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(g.Max-g.Min))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(g.Min+n.Int64(), 10), nil
}

// UUIDGenerator produces random (version 4) UUIDs
type UUIDGenerator struct{}

// NewID generates an identifier
func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewIDGenerator returns the generator for a configured strategy ("range" or "uuid")
func NewIDGenerator(strategy string, min, max int64) (IDGenerator, error) {
	switch strategy {
	case "range", "":
		return RangeIDGenerator{Min: min, Max: max}, nil
	case "uuid":
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported id strategy %q", strategy)
	}
}
