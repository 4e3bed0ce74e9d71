package controllers

import (
	"net/http"

	"lab_loan_tool/app"
	"lab_loan_tool/models"

	"github.com/gin-gonic/gin"
)

// PartyController serves both name lists: requesters and custodians.
type PartyController struct{ *Srv }

func NewPartyController(s *Srv) *PartyController { return &PartyController{Srv: s} }

func roleParam(c *gin.Context) (models.PartyRole, bool) {
	role, err := models.ParsePartyRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
		return "", false
	}
	return role, true
}

// GET /api/parties/:role?q=
// q 用于姓名自动补全（不区分大小写的子串匹配）
func (pc *PartyController) ListParties(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	ps, err := pc.Ledger.SuggestParties(role, c.Query("q"))
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"total": len(ps), "items": nonNil(ps)})
}

// POST /api/parties/:role
func (pc *PartyController) CreateParty(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := pc.Ledger.AddParty(c.Request.Context(), role, in.Name)
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// DELETE /api/parties/:role/:id
// 仍有未归还借用的人不能删
func (pc *PartyController) DeleteParty(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pc.Ledger.RemoveParty(c.Request.Context(), role, id, app.Confirmed(c)); err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
