package middlewares

import (
	"gql-storefront/constants"
	"gql-storefront/services"

	"github.com/gin-gonic/gin"
)

const identityKey = "userID"

// AuthMiddleware extracts the caller's identity from the session cookie.
// Unlike a route guard it never aborts: resolvers decide for themselves
// whether a missing identity is an error.
func AuthMiddleware(authService services.IAuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(constants.TokenCookieName)
		if err != nil || tokenString == "" {
			ctx.Next()
			return
		}

		userID, err := authService.GetUserIDFromToken(tokenString)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(identityKey, userID)
		ctx.Next()
	}
}

// CurrentUserID reports the authenticated caller, if any.
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	v, exists := ctx.Get(identityKey)
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}
