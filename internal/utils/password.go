package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes plain at the configured cost.  A cost outside
// bcrypt's supported range (a miswritten BCRYPT_COST value) is replaced with
// the library default so account creation keeps working instead of failing.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches a stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
