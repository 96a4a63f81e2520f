package cmd

import (
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var getCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Query fatd for balances, chains, txs and NF tokens",
		Long: `
Query the fatd node at --fatd about the token chains it tracks.

Every result comes from fatd and is only as trustworthy as that node. Chains
that fatd does not track cannot be queried.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["get"] = getCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, getCmplCmd.Flags)
	return cmd
}()

var getCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags),
	Sub:   complete.Commands{},
}
