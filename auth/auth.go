package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"CareLink360/db"
	"CareLink360/role"
	"CareLink360/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated identity resolved from a bearer token.
type Principal struct {
	ID    primitive.ObjectID
	Role  role.Role
	Token string
}

const principalKey = "principal"

// findByToken checks that the token is still attached to the account in the
// role's collection. Overridable for tests.
var findByToken = func(ctx context.Context, collection string, id primitive.ObjectID, token string) error {
	result := bson.M{}
	coll := db.OpenCollections(collection)
	return db.FindOne(ctx, coll, bson.M{"_id": id, "tokens.token": token}, &result)
}

// JWTAuth resolves the Authorization header into a Principal. The token must
// verify and still be present in the account's session list.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthenticated(c, fmt.Errorf("%w: authorization header missing or invalid", util.ErrUnauthenticated))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := Parse(token)
		if err != nil {
			abortUnauthenticated(c, err)
			return
		}

		r, err := role.Parse(claims.Role)
		if err != nil {
			abortUnauthenticated(c, err)
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.AccountID)
		if err != nil {
			abortUnauthenticated(c, fmt.Errorf("%w: invalid account id in token", util.ErrUnauthenticated))
			return
		}

		if err := findByToken(c, r.Collection(), id, token); err != nil {
			abortUnauthenticated(c, fmt.Errorf("%w: account or token not found", util.ErrUnauthenticated))
			return
		}

		c.Set(principalKey, Principal{ID: id, Role: r, Token: token})
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after JWTAuth.
func RequireRole(roles ...role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthenticated(c, util.ErrUnauthenticated)
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(util.ErrForbidden))
	}
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func abortUnauthenticated(c *gin.Context, err error) {
	log.Println("Auth error:", err)
	c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(util.ErrUnauthenticated))
}
