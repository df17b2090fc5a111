package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stephaniewilkinson/siskiyou/core/user"
)

// adminMiddleware restricts a route to administrator accounts.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// classroomPosterMiddleware restricts a route to accounts that may
// publish classroom posts: staff, or approved parent representatives.
func classroomPosterMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsStaff || (claims.Role == user.RoleParentRep && claims.IsApproved) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
