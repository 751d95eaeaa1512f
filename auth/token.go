package auth

import (
	"fmt"

	"CareLink360/config"
	"CareLink360/role"
	"CareLink360/util"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims bind an account id and its role into a signed session token. A token
// stays valid only while it is also present in the account's tokens array, so
// no expiry claim is set; revocation is the removal from that array.
type Claims struct {
	AccountID string `json:"id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func Sign(id primitive.ObjectID, r role.Role) (string, error) {
	claims := Claims{
		AccountID: id.Hex(),
		Role:      string(r),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Get().JWTSecret))
}

func Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Get().JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", util.ErrUnauthenticated)
	}
	return claims, nil
}
