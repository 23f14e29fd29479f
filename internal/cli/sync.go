package cli

import (
	"fmt"
)

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *Context) error {
	if err := ctx.App.Syncer.Reconcile(); err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	fmt.Println("Stores reconciled.")
	return nil
}
