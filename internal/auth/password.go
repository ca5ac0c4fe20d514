package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a staff password with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to the library default,
// so a misconfigured AUTH_BCRYPT_COST cannot produce weak hashes.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword reports whether plain matches the stored bcrypt hash.
// The error is opaque on purpose: login failures must stay vague.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
