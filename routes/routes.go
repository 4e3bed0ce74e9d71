package routes

import (
	"net/http"

	"lab_loan_tool/app"
	"lab_loan_tool/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	itemCtl := controllers.NewItemController(s)
	partyCtl := controllers.NewPartyController(s)
	loanCtl := controllers.NewLoanController(s)
	noteCtl := controllers.NewReturnNoteController(s)
	exportCtl := controllers.NewExportController(s)

	// 删除/归还需要 X-Confirm
	confirmMW := app.Confirmation()

	r.GET("/healthz", func(c *app.Ctx) { c.JSON(http.StatusOK, app.H{"ok": true}) })

	api := r.Group("/api")

	// ------------------------------
	// 器材
	// ------------------------------
	equipment := api.Group("/equipment")
	{
		equipment.GET("", itemCtl.ListItems)               // ?category=
		equipment.GET("/available", itemCtl.ListAvailable) // ?category=
		equipment.POST("", itemCtl.CreateItem)
		equipment.DELETE("/:category/:id", confirmMW, itemCtl.DeleteItem)
	}

	// ------------------------------
	// 借用人 / 保管人
	// ------------------------------
	parties := api.Group("/parties/:role")
	{
		parties.GET("", partyCtl.ListParties)
		parties.POST("", partyCtl.CreateParty)
		parties.DELETE("/:id", confirmMW, partyCtl.DeleteParty)
	}

	// ------------------------------
	// 借还
	// ------------------------------
	loans := api.Group("/loans")
	{
		loans.GET("", loanCtl.List) // ?q=&field=
		loans.GET("/active", loanCtl.ListActive)
		loans.GET("/:id", loanCtl.Get)
		loans.POST("", loanCtl.Register)
		loans.POST("/:id/return", confirmMW, loanCtl.Return)
		loans.DELETE("/:id", confirmMW, loanCtl.Delete)
	}
	api.GET("/return-notes", noteCtl.List) // ?loanId=

	// ------------------------------
	// 导出
	// ------------------------------
	exp := api.Group("/export")
	{
		exp.GET("/workbook", exportCtl.Workbook)
		exp.GET("/active-loans", exportCtl.ActiveLoans)
		exp.GET("/:table", exportCtl.Table)
	}
}
