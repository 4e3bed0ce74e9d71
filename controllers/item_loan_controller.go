// controllers/item_loan_controller.go
package controllers

import (
	"net/http"
	"strings"

	"lab_loan_tool/app"
	"lab_loan_tool/ledger"
	"lab_loan_tool/models"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// POST /api/equipment
func (ic *ItemController) CreateItem(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	cat, err := models.ParseCategory(in.Category)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	it, err := ic.Ledger.AddItem(c.Request.Context(), in.Name, cat)
	if err != nil {
		ic.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GET /api/equipment?category=
func (ic *ItemController) ListItems(c *gin.Context) {
	var cat models.Category
	if q := c.Query("category"); q != "" {
		var err error
		if cat, err = models.ParseCategory(q); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	items, err := ic.Ledger.ListEquipment(cat)
	if err != nil {
		ic.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": nonNil(items)})
}

// GET /api/equipment/available?category=
// 下拉框用：只返回可借的，并带上显示名
func (ic *ItemController) ListAvailable(c *gin.Context) {
	cat, err := models.ParseCategory(c.Query("category"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	items, err := ic.Ledger.ListAvailable(cat)
	if err != nil {
		ic.fail(c, err)
		return
	}
	type row struct {
		models.EquipmentItem
		DisplayName string `json:"displayName"`
	}
	rows := make([]row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{EquipmentItem: it, DisplayName: it.DisplayName()})
	}
	c.JSON(http.StatusOK, app.H{"items": rows})
}

// DELETE /api/equipment/:category/:id
func (ic *ItemController) DeleteItem(c *gin.Context) {
	cat, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ic.Ledger.RemoveItem(c.Request.Context(), cat, id, app.Confirmed(c)); err != nil {
		ic.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// RegisterLoanReq accepts explicit selections ({"device": {"itemId": 3}}) and,
// for the old form, plain names per category.
type RegisterLoanReq struct {
	Requester  string                      `json:"requester"`
	Custodian  string                      `json:"custodian"`
	Selections map[string]ledger.Selection `json:"selections,omitempty"`
	Device     string                      `json:"device,omitempty"`
	Controller string                      `json:"controller,omitempty"`
	Cable      string                      `json:"cable,omitempty"`
	Headphones string                      `json:"headphones,omitempty"`
	Condition  string                      `json:"condition,omitempty"`
	Notes      string                      `json:"notes,omitempty"`
}

func (req RegisterLoanReq) selections() (ledger.Selections, error) {
	out := ledger.Selections{}
	for k, sel := range req.Selections {
		cat, err := models.ParseCategory(k)
		if err != nil {
			return nil, err
		}
		out[cat] = sel
	}
	named := map[models.Category]string{
		models.CategoryDevice:     req.Device,
		models.CategoryController: req.Controller,
		models.CategoryCable:      req.Cable,
		models.CategoryHeadphones: req.Headphones,
	}
	for cat, name := range named {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		if _, set := out[cat]; !set {
			out[cat] = ledger.Selection{DisplayName: displayNameFor(cat, name)}
		}
	}
	return out, nil
}

// displayNameFor appends " (label)" unless name already carries it.
func displayNameFor(cat models.Category, name string) string {
	if strings.HasSuffix(name, " ("+cat.Label()+")") {
		return name
	}
	return models.DisplayName(name, cat)
}

// POST /api/loans
func (lc *LoanController) Register(c *gin.Context) {
	var req RegisterLoanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	sels, err := req.selections()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	loan, err := lc.Ledger.RegisterLoan(c.Request.Context(), ledger.RegisterLoanInput{
		Requester:  req.Requester,
		Custodian:  req.Custodian,
		Selections: sels,
		Condition:  models.LoanCondition(req.Condition),
		Notes:      req.Notes,
	})
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

type ReturnLoanReq struct {
	ReceivedBy string `json:"receivedBy"`
	Condition  string `json:"condition,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// POST /api/loans/:id/return
func (lc *LoanController) Return(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ReturnLoanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	loan, err := lc.Ledger.ReturnLoan(c.Request.Context(), ledger.ReturnLoanInput{
		LoanID:     id,
		ReceivedBy: req.ReceivedBy,
		Condition:  models.ReturnCondition(req.Condition),
		Notes:      req.Notes,
		Confirmed:  app.Confirmed(c),
	})
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// DELETE /api/loans/:id
func (lc *LoanController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := lc.Ledger.DeleteLoan(c.Request.Context(), id, app.Confirmed(c)); err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/loans/:id
func (lc *LoanController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	loan, err := lc.Ledger.GetLoan(id)
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// 借还记录
// GET /api/loans?q=&field=requester|custodian|equipment|status
func (lc *LoanController) List(c *gin.Context) {
	field, err := ledger.ParseSearchField(c.Query("field"))
	if err != nil {
		lc.fail(c, err)
		return
	}
	loans, err := lc.Ledger.Search(c.Query("q"), field)
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": nonNil(loans), "total": len(loans)})
}

// GET /api/loans/active
func (lc *LoanController) ListActive(c *gin.Context) {
	loans := lc.Ledger.ActiveLoans()
	c.JSON(http.StatusOK, app.H{"items": nonNil(loans), "total": len(loans)})
}
