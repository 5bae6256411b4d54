package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a configured work factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher. Out-of-range costs fall back to
// bcrypt's default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way hash of the plaintext. Hashing the
// same plaintext twice yields different values.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed
// hashes verify as false rather than erroring.
func (h *PasswordHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
