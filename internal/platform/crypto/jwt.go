package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pokecatcher/internal/entity"
)

var ErrMissingSubject = errors.New("token has no subject")

// Claims is the identity provider's token payload. Only the fields used to
// identify a trainer are decoded.
type Claims struct {
	Sub  string `json:"sub"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, trainerID, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := Claims{
		Sub:  trainerID,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// TrainerVerifier checks HS256 bearer tokens signed with a shared secret.
type TrainerVerifier struct {
	secret string
}

func NewTrainerVerifier(secret string) *TrainerVerifier {
	return &TrainerVerifier{secret: secret}
}

func (v *TrainerVerifier) Verify(token string) (entity.Trainer, error) {
	claims, err := ParseToken(v.secret, token)
	if err != nil {
		return entity.Trainer{}, err
	}
	if claims.Sub == "" {
		return entity.Trainer{}, ErrMissingSubject
	}
	return entity.Trainer{ID: claims.Sub, DisplayName: claims.Name}, nil
}
