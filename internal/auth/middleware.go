package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "taskplanner/internal/errors"
	"taskplanner/internal/model"
)

// ContextUserKey is the echo context key the resolved user is stored under.
const ContextUserKey = "current_user"

// Middleware returns the bearer-token guard applied to every protected route.
// The resolver runs per request; any failure (missing header, malformed
// scheme, bad or expired token, unknown subject) produces the same 401 with a
// WWW-Authenticate: Bearer hint.
func Middleware(resolver *IdentityResolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextUserKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return resolver.Resolve(c.Request().Context(), tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// CurrentUser returns the authenticated user bound to the request, or nil
// outside the guarded route group.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}
