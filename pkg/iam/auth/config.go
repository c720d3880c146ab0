package auth

import "time"

// Config groups the token and admin credential settings
type Config struct {
	JWT   JWTConfig
	Admin AdminConfig
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
}

// AdminConfig holds the single administrator account.
// PasswordHash is a bcrypt hash; an empty hash disables login.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTokenTTL: 12 * time.Hour,
			Issuer:         "nerdyjobs",
		},
	}
}
