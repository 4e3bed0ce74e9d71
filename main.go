package main

import (
	"os"

	"lab_loan_tool/app"
	"lab_loan_tool/config"
	"lab_loan_tool/routes"
)

func main() {
	config.LoadEnv()
	application := app.MustNew()
	defer application.Close()

	r := application.Router
	routes.RegisterRoutes(r, application)

	addr := ":" + application.Config.Port
	application.Log.Info("listening", "addr", addr, "store", application.Config.StoreDriver)
	if err := r.Run(addr); err != nil {
		application.Log.Error("server stopped", "error", err)
		application.Close()
		os.Exit(1)
	}
}
