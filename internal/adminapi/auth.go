package adminapi

import (
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/internal/webserver"
	"github.com/chamberedinseams/storefront/pkg/common"
)

type loginPayload struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=1"`
}

func registerAuthRoutes() {
	webserver.RootPOST("/api/login", login)
	webserver.RootPOST("/api/logout", logout)
	webserver.ApiGET("/whoami", whoami)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var operator domain.SysOpr
	if err := GetDB(c).Where("email = ? and status = ?", email, common.ENABLED).First(&operator).Error; err != nil {
		zap.L().Warn("login rejected", zap.String("email", email))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if hashed != operator.Password {
		zap.L().Warn("login rejected", zap.String("email", email))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	cfg := GetAppContext(c).Config()
	claims := jwt.MapClaims{
		"uid":   operator.ID,
		"email": operator.Email,
		"level": operator.Level,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}

	sess, _ := session.Get(webserver.SessionName, c)
	sess.Values[webserver.SessionLoginFlag] = true
	sess.Values["email"] = operator.Email
	sess.Options.HttpOnly = true
	sess.Options.MaxAge = 86400
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("failed to save admin session", zap.Error(err))
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Update("last_login", time.Now())
	zap.L().Info("admin login", zap.String("email", email))

	return ok(c, map[string]interface{}{
		"token": signed,
		"email": operator.Email,
		"level": operator.Level,
	})
}

func logout(c echo.Context) error {
	sess, _ := session.Get(webserver.SessionName, c)
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("failed to clear admin session", zap.Error(err))
	}
	return ok(c, map[string]interface{}{"loggedOut": true})
}

// whoami returns the identity bound to the presented token.
func whoami(c echo.Context) error {
	token, isToken := c.Get("user").(*jwt.Token)
	if !isToken {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "No token presented", nil)
	}
	claims, isClaims := token.Claims.(jwt.MapClaims)
	if !isClaims {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "Malformed token claims", nil)
	}
	return ok(c, map[string]interface{}{
		"email": claims["email"],
		"level": claims["level"],
	})
}
