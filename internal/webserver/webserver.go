// Package webserver owns the Echo instance: route groups, JWT gate for the
// admin API, session cookies, validation and static uploads. Feature
// packages register their handlers through the ApiXXX/ShopGET helpers.
package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/chamberedinseams/storefront/internal/app"
)

const (
	appContextKey = "storefront_app"
	// SessionName is the admin session cookie written on login.
	SessionName = "storefront_admin"
	// SessionLoginFlag marks a logged-in admin session.
	SessionLoginFlag = "adminLoggedIn"
)

type WebServer struct {
	root     *echo.Echo
	api      *echo.Group
	shop     *echo.Group
	appctx   app.AppContext
	sessions *sessions.CookieStore
}

var server *WebServer

// Init builds the singleton web server around the application context.
func Init(actx app.AppContext) {
	server = NewWebServer(actx)
}

func NewWebServer(actx app.AppContext) *WebServer {
	cfg := actx.Config()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: false,
	}))
	e.Validator = &payloadValidator{validate: validator.New()}

	ws := &WebServer{
		root:     e,
		appctx:   actx,
		sessions: sessions.NewCookieStore([]byte(cfg.Web.Secret)),
	}
	e.Use(session.Middleware(ws.sessions))

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, actx)
			return next(c)
		}
	})

	// Admin API group behind the JWT gate; login/logout live outside it.
	ws.api = e.Group("/api/v1")
	ws.api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
	}))

	// Public storefront surface, no auth.
	ws.shop = e.Group("/shop")

	// Uploaded product images are served verbatim.
	e.Static("/uploads", cfg.Workdir("uploads"))

	return ws
}

// Listen starts serving and blocks.
func Listen() error {
	cfg := server.appctx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown stops the underlying Echo server.
func Shutdown() {
	if server != nil {
		_ = server.root.Close()
	}
}

// Echo exposes the root instance (used by handler tests).
func Echo() *echo.Echo {
	return server.root
}

// GetAppContext pulls the application context injected per request.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// ApiGET registers a JWT-protected admin route.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// RootPOST registers an unauthenticated route (login and friends).
func RootPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// ShopGET registers a public storefront route.
func ShopGET(path string, h echo.HandlerFunc) {
	server.shop.GET(path, h)
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
