// Package auth реализует domain.AuthenticationHelper: PBKDF2-хеширование
// паролей со случайной солью и выпуск JWT-токенов доступа.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/pbkdf2"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

const (
	saltLength = 16
	hashLength = 32
	// iterations подобрано по рекомендациям OWASP для PBKDF2-SHA256.
	iterations = 600_000

	defaultTokenTTL = 24 * time.Hour
)

// Helper — рабочая реализация AuthenticationHelper.
type Helper struct {
	signingKey []byte
	tokenTTL   time.Duration
	issuer     string
}

// NewHelper создаёт помощник аутентификации с данным ключом подписи токенов.
func NewHelper(signingKey []byte) *Helper {
	return &Helper{
		signingKey: signingKey,
		tokenTTL:   defaultTokenTTL,
		issuer:     "beershop",
	}
}

// GenerateSalt возвращает свежую криптослучайную соль.
func (h *Helper) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// GenerateHash считает PBKDF2-SHA256 хеш пароля с данной солью.
func (h *Helper) GenerateHash(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, hashLength, sha256.New)
}

// ValidateLogin сверяет введённый пароль с сохранённым хешем.
func (h *Helper) ValidateLogin(user domain.User, input domain.LoginInput) error {
	candidate := h.GenerateHash(input.Password, user.Salt)
	if !hmac.Equal(candidate, user.PasswordHash) {
		return domain.ErrInvalidPassword
	}
	return nil
}

// GenerateToken выпускает подписанный JWT для учётной записи.
func (h *Helper) GenerateToken(user domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", user.ID),
		"username": user.Username,
		"role":     user.Role,
		"iss":      h.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(h.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims.
func (h *Helper) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.signingKey, nil
	}, jwt.WithIssuer(h.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, domain.NewError(domain.KindUnauthorized, "token is invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.NewError(domain.KindUnauthorized, "token is invalid or expired")
	}
	return claims, nil
}

var _ domain.AuthenticationHelper = (*Helper)(nil)
