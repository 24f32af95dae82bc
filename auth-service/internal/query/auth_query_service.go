package query

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ify-osakwe/hygea/shared/cqrs"
	"github.com/ify-osakwe/hygea/shared/errs"
	"github.com/ify-osakwe/hygea/shared/models"
	"github.com/ify-osakwe/hygea/shared/utils"
)

var (
	jwtSecretOnce sync.Once
	jwtSecretVal  []byte
)

func jwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			panic("JWT_SECRET environment variable is not set")
		}
		jwtSecretVal = []byte(secret)
	})
	return jwtSecretVal
}

// Claims is the JWT payload.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserGetter is the slice of the user store the auth service needs.
type UserGetter interface {
	GetByEmail(email string) (*models.User, error)
}

// AuthQueryService handles login, token validation and token refresh.
// There is no command service for auth because none of these operations
// mutate application state.
type AuthQueryService struct {
	userRepo UserGetter
}

func NewAuthQueryService(userRepo UserGetter) *AuthQueryService {
	return &AuthQueryService{userRepo: userRepo}
}

// Login checks the password against the stored bcrypt hash and issues a
// signed token. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *AuthQueryService) Login(cmd cqrs.LoginCommand) (string, error) {
	user, err := s.userRepo.GetByEmail(cmd.Email)
	if err != nil {
		return "", errs.ErrInvalidCredentials
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", errs.ErrInvalidCredentials
	}
	return s.generateToken(user)
}

// ValidateToken reports whether the token parses, verifies and has not expired.
func (s *AuthQueryService) ValidateToken(q cqrs.ValidateTokenQuery) bool {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(q.Token, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	})
	return err == nil && token.Valid
}

func (s *AuthQueryService) RefreshToken(cmd cqrs.RefreshTokenCommand) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cmd.Token, claims, func(token *jwt.Token) (any, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return s.generateToken(&models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role})
}

func (s *AuthQueryService) generateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
