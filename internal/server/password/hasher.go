// Package password turns plaintext secrets into storable digests and checks
// candidates against them. bcrypt generates a random salt per call and embeds
// it in the digest, so hashing the same secret twice yields two different
// digests that both verify.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/authgate/internal/common"
)

const (
	// MinLength is the minimum accepted password length.
	MinLength = 6
	// maxLength is the bcrypt input limit.
	maxLength = 72

	DefaultCost = 10
)

// Hasher produces and verifies salted one-way password digests.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of password, enforcing the length policy.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) < MinLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinLength)
	}
	if len(password) > maxLength {
		return "", fmt.Errorf("%w: password must be at most %d characters", common.ErrorValidation, maxLength)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether password matches digest. A mismatch and a
// malformed digest both yield false; Verify never returns an error.
// The underlying comparison is constant-time.
func (h *Hasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
