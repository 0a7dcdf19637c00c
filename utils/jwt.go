package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alvillalta/instagram-api/config"
	"github.com/alvillalta/instagram-api/models"
)

// Claims is the bearer token payload. Identity fields (UserID, IsActive,
// IsAdmin) are authoritative for the token's lifetime; the social-graph
// fields are a snapshot taken at issue time and go stale as soon as the
// graph changes, so handlers must never re-derive authorization or
// responses from them. They recompute from the store instead.
type Claims struct {
	UserID    uint                    `json:"user_id"`
	Email     string                  `json:"email"`
	IsActive  bool                    `json:"is_active"`
	IsAdmin   bool                    `json:"is_admin"`
	FirstName *string                 `json:"first_name"`
	LastName  *string                 `json:"last_name"`
	Followers []uint                  `json:"followers"`
	Following []uint                  `json:"following"`
	Posts     []uint                  `json:"posts"`
	Comments  []models.CommentPayload `json:"comments"`
	jwt.RegisteredClaims
}

// GenerateToken issues a JWT for the user, embedding the current identity
// and social-graph snapshot. The jti claim identifies the token for revocation.
func GenerateToken(db *gorm.DB, user models.User) (string, error) {
	cfg := config.Get()

	snapshot, err := models.SerializeUser(db, user)
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Followers: snapshot.Followers,
		Following: snapshot.Following,
		Posts:     snapshot.Posts,
		Comments:  snapshot.Comments,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWTTTLHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates signature and expiry and returns the claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
