package pkg

import "golang.org/x/crypto/bcrypt"

// DefaultTokenHashCost is used by the CLI when generating the API token hash for the config.
const DefaultTokenHashCost = 14

func HashToken(token string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	return BytesToString(bytes), err
}

func CheckTokenHash(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
