package pkg

import "golang.org/x/crypto/bcrypt"

// passwordCost keeps hashing fast enough for the login path while staying
// at the bcrypt default floor.
const passwordCost = bcrypt.DefaultCost

func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), passwordCost)
	return string(b), err
}
func ComparePassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
