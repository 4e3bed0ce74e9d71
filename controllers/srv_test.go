package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"lab_loan_tool/ledger"
)

func Test_Srv_Fail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		wantLog bool
	}{
		{name: "validation", err: fmt.Errorf("%w: name is required", ledger.ErrValidation), status: http.StatusBadRequest},
		{name: "confirmation", err: ledger.ErrConfirmationRequired, status: http.StatusPreconditionRequired},
		{name: "persistence", err: fmt.Errorf("%w: disk full", ledger.ErrPersistence), status: http.StatusInternalServerError, wantLog: true},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, wantLog: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			var logs bytes.Buffer
			s := &Srv{Log: slog.New(slog.NewTextHandler(&logs, nil))}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/loans", nil)

			// act
			s.fail(c, tc.err)

			// assert
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.err.Error())
			if tc.wantLog {
				assert.Contains(t, logs.String(), "request failed")
				assert.Len(t, c.Errors, 1)
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
