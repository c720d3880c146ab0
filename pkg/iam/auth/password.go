package auth

// PasswordService hashes and verifies admin passwords
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
}
