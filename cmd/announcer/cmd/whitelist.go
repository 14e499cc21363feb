package cmd

import (
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/announcer/cmd/announcer/common"
	"boscoin.io/announcer/lib/common/keypair"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/transaction/operation"
)

var (
	whitelistCmd       *cobra.Command
	whitelistAddCmd    *cobra.Command
	whitelistRemoveCmd *cobra.Command
)

func checkAddresses(c *cobra.Command, addresses []string) {
	for _, address := range addresses {
		if !keypair.IsValidAddress(address) {
			cmdcommon.PrintFlagsError(c, "<address>", errors.BadPublicAddress.Clone().SetData("address", address))
		}
	}
}

func init() {
	whitelistCmd = &cobra.Command{
		Use:   "whitelist",
		Short: "Vote on the whitelist of authors",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	whitelistAddCmd = &cobra.Command{
		Use:   "add <address> [<address>...]",
		Short: "Propose or vote to add authors",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			checkAddresses(c, args)
			submitOperation(c, operation.NewAddToWhitelist(args...))
		},
	}

	whitelistRemoveCmd = &cobra.Command{
		Use:   "remove <address> [<address>...]",
		Short: "Propose or vote to remove authors",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			checkAddresses(c, args)
			submitOperation(c, operation.NewRemoveFromWhitelist(args...))
		},
	}

	addClientFlags(whitelistAddCmd, true)
	addClientFlags(whitelistRemoveCmd, true)

	whitelistCmd.AddCommand(whitelistAddCmd, whitelistRemoveCmd)
	rootCmd.AddCommand(whitelistCmd)
}
