package echoapi

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/news"
	"github.com/stephaniewilkinson/siskiyou/core/user"
)

type newsApi struct {
	svc        *news.Service
	usrSvc     user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerNewsAPI(g *echo.Group, auth *jwtAuth, deps *Deps) {
	api := newsApi{
		svc:        deps.NewsSvc,
		usrSvc:     deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	ng := g.Group("/news")
	// the authed sub-group must exist before the open routes are added:
	// Group registers catch-all routes that would otherwise shadow them.
	ag := ng.Group("", auth.middleware())

	// the feed is open; a token widens it to the viewer's classrooms
	ng.GET("", api.feed, auth.optionalMiddleware())
	ng.GET("/categories", api.queryCategories)

	ag.POST("", api.post, adminMiddleware())
	ag.POST("/classroom", api.postClassroom, classroomPosterMiddleware())
}

// FeedQuery is the feed's filter, bound from query params.
type FeedQuery struct {
	Category      string `query:"category"`
	ClassroomOnly bool   `query:"classroom_only"`
	Search        string `query:"search"`
}

func (fq *FeedQuery) Bind(ctx echo.Context) {
	params := ctx.QueryParams()
	fq.Category = core.CleanString(params.Get("category"), true /* lower */)
	fq.Search = core.CleanString(params.Get("search"))
	if v, err := strconv.ParseBool(params.Get("classroom_only")); err == nil {
		fq.ClassroomOnly = v
	}
}

// Handlers

func (api *newsApi) feed(ctx echo.Context) error {
	var query FeedQuery
	query.Bind(ctx)

	// guests have no token; a bad record lookup falls back to guest view
	var viewer *user.User
	if _, err := getContextClaims(ctx); err == nil {
		if usr, err := getContextUser(ctx, api.usrSvc); err == nil {
			viewer = &usr
		}
	}

	sel := news.Selection{Category: query.Category, ClassroomOnly: query.ClassroomOnly}
	return ctx.JSON(http.StatusOK, api.svc.Feed(viewer, sel, query.Search))
}

func (api *newsApi) queryCategories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, news.Categories)
}

func (api *newsApi) post(ctx echo.Context) error {
	var data news.NewItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewItem")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	author, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	item, err := api.svc.Post(data, author)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, item)
}

func (api *newsApi) postClassroom(ctx echo.Context) error {
	var data news.NewClassroomItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClassroomItem")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	author, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	item, err := api.svc.PostClassroom(data, author)
	if err != nil {
		if errors.Cause(err) == news.ErrNoClassroom {
			return core.NewValidationError(err, core.FieldError{Field: "classroom_id", Error: err.Error()})
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, item)
}
