package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/catconnect/cat-listing-api/docs"
	"github.com/catconnect/cat-listing-api/internal/api/handler"
	"github.com/catconnect/cat-listing-api/internal/api/middleware"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
	"github.com/catconnect/cat-listing-api/internal/infrastructure/http/handlers"
)

// Services are the core use cases the routes delegate to.
type Services struct {
	Auth      ports.AuthService
	Cats      ports.CatService
	Chat      ports.ChatService
	Favorites ports.FavoriteService
	Tweets    ports.TweetService
}

// Options tune the router. Zero values are usable.
type Options struct {
	Prefix         string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	CORSOrigins    []string
	ChatFeed       handler.ChatFeed
	HealthChecks   map[string]handlers.Check
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	docs.SwaggerInfo.BasePath = opts.Prefix
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	verifier := middleware.NewTokenVerifier(svc.Auth)
	authed := func(h handler.AuthedFunc) echo.HandlerFunc { return handler.Authed(verifier, h) }

	authHandler := handler.NewAuthHandler(svc.Auth, opts.Logger)
	catHandler := handler.NewCatHandler(svc.Cats, opts.MaxUploadBytes, opts.Logger)
	chatHandler := handler.NewChatHandler(svc.Chat, opts.ChatFeed, origins, opts.Logger)
	favoriteHandler := handler.NewFavoriteHandler(svc.Favorites, opts.Logger)
	tweetHandler := handler.NewTweetHandler(svc.Tweets, opts.Logger)

	g := e.Group(opts.Prefix)
	if opts.RequestTimeout > 0 {
		g.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: opts.RequestTimeout,
			// the live feed outlives any request deadline
			Skipper: func(c echo.Context) bool { return c.Path() == opts.Prefix+"/chat/:catId/ws" },
		}))
	}

	// --- Auth & profiles ---
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.POST("/logout", authed(authHandler.Logout))
	g.GET("/userRole/:userId", authHandler.UserRole)
	g.GET("/userData/:userId", authHandler.UserData)

	// --- Listings ---
	g.GET("/cats", catHandler.List)
	g.GET("/AllCats", catHandler.ListAll)
	g.GET("/cats/:catId", catHandler.Get)
	g.PUT("/cats/:catId", authed(catHandler.Update))
	g.DELETE("/cats/:catId", authed(catHandler.Delete))
	g.POST("/add-cat", authed(catHandler.Create))

	// --- Chat ---
	g.POST("/chat", chatHandler.Post)
	g.GET("/chat/:catId", chatHandler.List)
	g.GET("/chat/:catId/ws", chatHandler.Stream)
	g.DELETE("/chat/:catId/:messageId", chatHandler.Delete)

	// --- Favorites ---
	g.POST("/add-favorite", authed(favoriteHandler.Add))
	g.GET("/FavouriteCats", authed(favoriteHandler.List))

	// --- Social ---
	g.POST("/post-tweet", authed(tweetHandler.Post))

	return e
}
