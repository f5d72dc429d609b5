package handlers

import (
	"net/http"
	"strings"

	"credpool/internal/credential"
	"credpool/internal/errors"

	"github.com/gin-gonic/gin"
)

// AdminReset handles POST /admin/credentials/:id/reset, forcing the named
// credential back to ELIGIBLE, per §9.2. The route is only
// ever registered when cfg.AdminKey is non-empty; this handler still
// re-checks it so a future caller can't register the route unguarded.
func AdminReset(reg *credential.Registry, adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" || !adminKeyMatches(c, adminKey) {
			writeAPIError(c, errors.AdminAuthFailed())
			return
		}

		id := c.Param("id")
		if !reg.Reset(id) {
			writeAPIError(c, errors.NotFound())
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "status": "reset"})
	}
}

// adminKeyMatches checks the caller's presented token, taken from an
// Authorization: Bearer header or the x-admin-key header, against key.
func adminKeyMatches(c *gin.Context, key string) bool {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		if strings.TrimPrefix(auth, "Bearer ") == key {
			return true
		}
	}
	return c.GetHeader("x-admin-key") == key
}
