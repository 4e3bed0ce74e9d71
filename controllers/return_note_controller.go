package controllers

import (
	"net/http"
	"strconv"

	"lab_loan_tool/app"

	"github.com/gin-gonic/gin"
)

// ReturnNoteController exposes the incomplete-return log.
type ReturnNoteController struct{ *Srv }

func NewReturnNoteController(s *Srv) *ReturnNoteController { return &ReturnNoteController{Srv: s} }

// GET /api/return-notes?loanId=
func (rc *ReturnNoteController) List(c *gin.Context) {
	loanID := 0
	if v := c.Query("loanId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			badRequest(c, "invalid loanId")
			return
		}
		loanID = n
	}
	c.JSON(http.StatusOK, app.H{"items": nonNil(rc.Ledger.ReturnNotes(loanID))})
}
