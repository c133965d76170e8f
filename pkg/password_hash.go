package pkg

import "golang.org/x/crypto/bcrypt"

const apiKeyHashCost = 12

// HashAPIKey returns the bcrypt hash stored in BLOG_ADMIN_KEY_HASH.
func HashAPIKey(key string) (string, error) {
	return hashWithCost(key, apiKeyHashCost)
}

func hashWithCost(key string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	return BytesToString(bytes), err
}

func CheckAPIKeyHash(key, hash string) bool {
	if key == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
