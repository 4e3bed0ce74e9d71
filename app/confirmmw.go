// app/confirmmw.go
package app

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ConfirmHeader = "X-Confirm"
	confirmedKey  = "confirmed"
)

// Confirmation reads the caller's explicit confirmation for destructive
// routes (X-Confirm header or ?confirm=) and stores it in the context.
// The ledger refuses the operation when it is missing.
func Confirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := c.GetHeader(ConfirmHeader)
		if v == "" {
			v = c.Query("confirm")
		}
		ok, err := strconv.ParseBool(strings.TrimSpace(v))
		c.Set(confirmedKey, err == nil && ok)
		c.Next()
	}
}

// Confirmed reports what Confirmation stored; false when the middleware did not run.
func Confirmed(c *gin.Context) bool {
	return c.GetBool(confirmedKey)
}
