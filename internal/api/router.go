package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-web/internal/api/handler"
	"github.com/skillswap/skillswap-web/internal/api/middleware"
	"github.com/skillswap/skillswap-web/internal/core/ports"
	infrahttp "github.com/skillswap/skillswap-web/internal/infrastructure/http"
)

// Deps is everything the router wires into the page handlers.
type Deps struct {
	API       ports.Catalog
	APIURL    string
	State     ports.AuthState
	Navigator ports.Navigator
	Providers map[string]ports.IdentityProvider
	States    ports.StateIssuer
	Receipts  ports.ReadReceipts
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("skillswap"))

	// --- Health checks, metrics and docs (no session) ---
	infrahttp.RegisterOperations(e, d.APIURL, d.Redis)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.API.Auth, d.State, d.Providers, d.States, d.Log)
	dashboardHandler := handler.NewDashboardHandler(d.API)
	matchesHandler := handler.NewMatchesHandler(d.API.Matches)
	searchHandler := handler.NewSearchHandler(d.API.Skills, d.API.Matches)
	messagesHandler := handler.NewMessagesHandler(d.API.Users, d.API.Messages, d.Receipts)
	profileHandler := handler.NewProfileHandler(d.API.Users, d.API.Skills, d.API.Reviews, d.State, d.Log)
	sessionsHandler := handler.NewSessionsHandler(d.API.Sessions, d.API.Reviews)

	// Pages may trigger a hard navigation (expired session, logout).
	pages := e.Group("", middleware.Navigation())

	// --- Guest pages ---
	pages.GET("/", authHandler.Landing, middleware.GuestOnly(d.State, d.Navigator, "/dashboard"))
	pages.GET("/auth/signin", authHandler.SignIn)
	pages.GET("/auth/signin/:provider", authHandler.Start)
	pages.GET("/auth/callback/:provider", authHandler.Callback)
	pages.POST("/auth/logout", authHandler.Logout)

	// --- Signed-in pages ---
	app := pages.Group("", middleware.RequireAuth(d.State, d.Navigator))

	app.GET("/dashboard", dashboardHandler.Show)

	app.GET("/matches", matchesHandler.List)
	app.POST("/matches", matchesHandler.Connect)
	app.GET("/search", searchHandler.Search)

	app.GET("/messages", messagesHandler.Inbox)
	app.GET("/messages/:user_id", messagesHandler.Conversation)
	app.POST("/messages/:user_id", messagesHandler.Send)

	app.GET("/profile", profileHandler.Own)
	app.POST("/profile/edit", profileHandler.Edit)
	app.POST("/profile/skills", profileHandler.AddSkill)
	app.DELETE("/profile/skills/:id", profileHandler.RemoveSkill)
	app.POST("/profile/avatar", profileHandler.Avatar)
	app.GET("/profile/:user_id", profileHandler.Public)

	app.GET("/sessions", sessionsHandler.List)
	app.POST("/sessions", sessionsHandler.Create)
	app.GET("/sessions/:id", sessionsHandler.Detail)
	app.POST("/sessions/:id/cancel", sessionsHandler.Cancel)
	app.POST("/sessions/:id/respond", sessionsHandler.Respond)
	app.POST("/sessions/:id/reviews", sessionsHandler.Review)

	return e
}
