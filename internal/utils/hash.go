package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// PasswordHasher abstracts password hashing so the cost factor and
// algorithm are configurable, and handlers can be tested with a cheap
// stand-in instead of a real bcrypt round.
type PasswordHasher interface {
	Hash(password string) (string, error) // Hash produces a salted hash of the password
	Compare(hash, password string) error  // Compare reports whether the password matches the hash
}

// BcryptHasher is the production PasswordHasher
type BcryptHasher struct {
	Cost int // bcrypt cost factor; 0 falls back to bcrypt.DefaultCost
}

// Hash produces a salted bcrypt hash of the password
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost // Fall back to the library default
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks the password against the stored hash
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
