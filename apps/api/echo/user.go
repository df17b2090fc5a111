package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/user"
)

type userApi struct {
	conf       *core.Config
	svc        user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerUserAPI(g *echo.Group, auth *jwtAuth, deps *Deps) {
	api := userApi{
		conf:       deps.Conf,
		svc:        deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	ug := g.Group("/users")
	ag := ug.Group("", auth.middleware())
	adm := ag.Group("", adminMiddleware())

	// un-authed endpoints
	ug.POST("/signup", api.signup)
	ug.POST("/login", api.login)

	// authed endpoints
	ag.GET("/me", api.retrieveSelf)
	ag.POST("/me/children", api.addChild)
	ag.DELETE("/me/children/:id", api.removeChild)

	// admin endpoints
	adm.GET("", api.query)
	adm.GET("/pending", api.queryPending)
	adm.GET("/roles", api.queryRoles)
	adm.POST("/:id/approve", api.approve)
	adm.DELETE("/:id", api.deny)
}

// Handlers

func (api *userApi) signup(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}

	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, AuthResponse{Token: token, User: usr})
}

func (api *userApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrNotFound, user.ErrInvalidCredentials:
			return errAuthenticationFailed
		default:
			return errors.Wrap(err, "authenticating")
		}
	}
	if !usr.IsActive {
		return errAccountDeactivated
	}

	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, AuthResponse{Token: token, User: usr})
}

func (api *userApi) retrieveSelf(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) addChild(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data user.NewChild
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChild")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err = api.svc.AddChild(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "adding child")
	}
	ctx.Set(contextUserKey, usr)
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) removeChild(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	usr, err = api.svc.RemoveChild(ctx.Request().Context(), usr, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "removing child")
	}
	ctx.Set(contextUserKey, usr)
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) queryPending(ctx echo.Context) error {
	users, err := api.svc.QueryPending(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying pending users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

func (api *userApi) approve(ctx echo.Context) error {
	usr, err := api.svc.Approve(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "approving user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) deny(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	// Say No to Suicide! ctxUser cannot delete themselves
	if ctx.Param("id") == claims.Subject {
		return errHttpForbidden
	}

	if err := api.svc.Deny(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "denying user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AuthResponse is returned on successful signup and login.
type AuthResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}
