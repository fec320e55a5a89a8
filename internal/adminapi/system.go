package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/internal/webserver"
)

func registerSystemRoutes() {
	webserver.ApiGET("/system/dbcheck", dbCheck)
	webserver.ApiGET("/system/oprlogs", listOprLogs)
}

// dbCheck probes database connectivity with a trivial count.
func dbCheck(c echo.Context) error {
	start := time.Now()
	var count int64
	if err := GetDB(c).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return fail(c, http.StatusServiceUnavailable, "DATABASE_ERROR", "Database check failed", err.Error())
	}
	return ok(c, map[string]interface{}{
		"status":   "ok",
		"products": count,
		"latency":  time.Since(start).String(),
	})
}

func listOprLogs(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.SysOprLog{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operation logs", err.Error())
	}

	var rows []domain.SysOprLog
	if err := db.Order("opt_time DESC").Offset((page-1)*pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operation logs", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}
