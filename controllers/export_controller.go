package controllers

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"lab_loan_tool/app"
	"lab_loan_tool/export"
	"lab_loan_tool/models"

	"github.com/gin-gonic/gin"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportController struct{ *Srv }

func NewExportController(s *Srv) *ExportController { return &ExportController{Srv: s} }

// GET /api/export/workbook
func (ec *ExportController) Workbook(c *gin.Context) {
	sheets := export.WorkbookSheets(ec.Ledger.Snapshot())
	ec.send(c, "xlsx", "lab_loans", sheets...)
}

// GET /api/export/active-loans?format=csv|xlsx
func (ec *ExportController) ActiveLoans(c *gin.Context) {
	format, ok := formatParam(c)
	if !ok {
		return
	}
	ec.send(c, format, "active_loans", export.LoansSheet("Active loans", ec.Ledger.ActiveLoans()))
}

// GET /api/export/:table?format=csv|xlsx
// table: loans | equipment | requesters | custodians
func (ec *ExportController) Table(c *gin.Context) {
	format, ok := formatParam(c)
	if !ok {
		return
	}
	snap := ec.Ledger.Snapshot()
	var sheet export.Sheet
	switch table := strings.ToLower(c.Param("table")); table {
	case "loans":
		sheet = export.LoansSheet("Loans", snap.Loans)
	case "equipment":
		sheet = export.EquipmentSheet(export.AllEquipment(snap))
	case "requesters":
		sheet = export.PartiesSheet("Requesters", snap.Parties(models.RoleRequester))
	case "custodians":
		sheet = export.PartiesSheet("Custodians", snap.Parties(models.RoleCustodian))
	default:
		c.JSON(http.StatusNotFound, app.H{"error": "unknown table " + table})
		return
	}
	ec.send(c, format, sheet.Name, sheet)
}

func formatParam(c *gin.Context) (string, bool) {
	switch f := strings.ToLower(c.DefaultQuery("format", "csv")); f {
	case "csv", "xlsx":
		return f, true
	default:
		badRequest(c, "format must be csv or xlsx")
		return "", false
	}
}

// send 先写到内存，出错时还能返回 JSON
func (ec *ExportController) send(c *gin.Context, format, base string, sheets ...export.Sheet) {
	var buf bytes.Buffer
	var err error
	mime := mimeXLSX
	if format == "csv" {
		mime = mimeCSV
		err = export.WriteCSV(&buf, sheets[0])
	} else {
		err = export.WriteXLSX(&buf, sheets...)
	}
	if err != nil {
		ec.fail(c, err)
		return
	}
	name := export.FileName(strings.ReplaceAll(base, " ", "_"), format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, mime, buf.Bytes())
}
