package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/stephaniewilkinson/siskiyou/core"
	"github.com/stephaniewilkinson/siskiyou/core/news"
	"github.com/stephaniewilkinson/siskiyou/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
	}

	// Deps holds the services the API serves. All fields are required.
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		UserSvc    user.Service
		NewsSvc    *news.Service
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		deps *Deps
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

// NewServer wires the API. shutdown is called when an unrecoverable
// error bubbles up through the error handler.
func NewServer(opts *Options, shutdown func(), deps *Deps) Server {
	s := &server{
		opts: opts,
		deps: deps,
		app:  echo.New(),
	}
	s.setup(shutdown)
	return s
}

func (s *server) setup(shutdown func()) {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, shutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	auth := newJWTAuth(conf)

	registerUserAPI(v1, auth, s.deps)
	registerNewsAPI(v1, auth, s.deps)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+s.deps.Conf.School.Name+" API!")
}
