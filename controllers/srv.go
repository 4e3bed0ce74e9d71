// controllers/srv.go
package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"lab_loan_tool/app"
	"lab_loan_tool/ledger"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Ledger *ledger.Ledger
	Log    *slog.Logger
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Ledger: a.Ledger,
		Log:    a.Log,
	}
}

// --- helpers ---

// statusOf maps ledger error kinds to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrUnavailable),
		errors.Is(err, ledger.ErrConflict),
		errors.Is(err, ledger.ErrAlreadyReturned):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	}
	return http.StatusInternalServerError
}

// fail 统一错误响应；500 记录日志
func (s *Srv) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		if s.Log != nil {
			s.Log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		}
	}
	c.JSON(status, app.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, app.H{"error": msg})
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
