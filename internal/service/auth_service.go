package service

import (
	"fmt"
	"time"

	"librosml-tf/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService valida al único admin (credenciales por env, hash bcrypt)
// y emite el JWT que protege los endpoints de mantenimiento.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login compara usuario + clave contra el admin configurado y devuelve
// un token firmado (24h).
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.cfg.AdminUser {
		return "", fmt.Errorf("credenciales inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPassHash), []byte(password)); err != nil {
		return "", fmt.Errorf("credenciales inválidas")
	}

	claims := jwt.MapClaims{
		"sub":  username,
		"role": "ADMIN",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
