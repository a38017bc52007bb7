package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/ParthChaturvedi07/InvestorSarthi/internal/auth"
	apperrors "github.com/ParthChaturvedi07/InvestorSarthi/internal/errors"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/service"
)

const (
	// tokenContextKey is where echo-jwt parks the parsed *jwt.Token.
	tokenContextKey = "user"
	// userContextKey is where the resolved user record is attached.
	userContextKey = "currentUser"
)

// JWT returns the token-extraction middleware. Tokens are read from the
// `token` cookie first, with a bearer Authorization header as fallback for
// clients that cannot use cookies.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  jwtService.Secret(),
		TokenLookup: "cookie:token,header:Authorization:Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Message: apperrors.ErrInvalidToken.Error(),
				Code:    "INVALID_TOKEN",
			})
		},
	})
}

// LoadUser runs after JWT: it rejects revoked tokens and resolves the claims
// to a live user record, attaching it to the request context.
func LoadUser(authService service.AuthService, tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Message: apperrors.ErrInvalidToken.Error(),
					Code:    "INVALID_TOKEN",
				})
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Message: apperrors.ErrInvalidToken.Error(),
					Code:    "INVALID_TOKEN",
				})
			}

			ctx := c.Request().Context()
			if revoked, _ := tokenStore.IsTokenRevoked(ctx, claims.ID); revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Message: apperrors.ErrInvalidToken.Error(),
					Code:    "TOKEN_REVOKED",
				})
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Message: apperrors.ErrInvalidToken.Error(),
					Code:    "INVALID_TOKEN",
				})
			}

			user, err := authService.GetUser(ctx, userID)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// CurrentToken returns the raw token string the request authenticated with.
func CurrentToken(c echo.Context) string {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return ""
	}
	return token.Raw
}
