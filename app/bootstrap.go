// app/bootstrap.go
package app

import (
	"context"
	"fmt"

	"lab_loan_tool/models"
)

// BootstrapCustodians seeds the custodian list from BOOTSTRAP_CUSTODIANS,
// only while that list is still empty.
func BootstrapCustodians(ctx context.Context, a *App) error {
	if len(a.Config.BootstrapCustodians) == 0 {
		return nil
	}
	existing, err := a.Ledger.ListParties(models.RoleCustodian)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, name := range a.Config.BootstrapCustodians {
		p, err := a.Ledger.AddParty(ctx, models.RoleCustodian, name)
		if err != nil {
			return fmt.Errorf("bootstrap custodian %q: %w", name, err)
		}
		a.Log.Info("[BOOTSTRAP] custodian created", "id", p.ID, "name", p.Name)
	}
	return nil
}
