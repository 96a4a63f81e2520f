package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var getChainsCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
chains [CHAINID...]`[1:],
		Aliases: []string{"chain", "stats", "stat", "issuance", "issuances"},
		Short:   "List issued token chains or show their stats",
		Long: `
With no CHAINID, list the token ID, issuer identity and chain ID of every issued
token chain that fatd tracks.

Otherwise print the issuance and current stats of each CHAINID, in the order
given. A CHAINID may be listed only once.
`[1:],
		Args: getChainsArgs,
		Run:  getChains,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["chains"] = getChainsCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["chains"] = complete.Command{}

	generateCmplFlags(cmd, getChainsCmplCmd.Flags)
	// Don't complete these global flags as they are ignored by this
	// command.
	for _, flg := range []string{"-c", "--chainid",
		"-i", "--identity", "-t", "--tokenid"} {
		delete(getChainsCmplCmd.Flags, flg)
	}
	usage := cmd.UsageFunc()
	cmd.SetUsageFunc(func(cmd *cobra.Command) error {
		cmd.Flags().MarkHidden("chainid")
		cmd.Flags().MarkHidden("tokenid")
		cmd.Flags().MarkHidden("identity")
		return usage(cmd)
	})
	return cmd
}()

var getChainsCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  PredictChainIDs,
}

var chainIDs []factom.Bytes32

func getChainsArgs(_ *cobra.Command, args []string) error {
	chainIDs = make([]factom.Bytes32, len(args))
	dupl := make(map[factom.Bytes32]struct{}, len(args))
	for i, arg := range args {
		id := &chainIDs[i]
		if err := id.Set(arg); err != nil {
			return err
		}
		if _, ok := dupl[*id]; ok {
			return fmt.Errorf("duplicate: %v", id)
		}
		dupl[*id] = struct{}{}
	}
	return nil
}

func getChains(_ *cobra.Command, _ []string) {
	if len(chainIDs) > 0 {
		for i := range chainIDs {
			printChainStats(&chainIDs[i])
		}
		return
	}

	log.Debug("Listing issued token chains...")
	tokens, err := FATClient.GetDaemonTokens()
	if err != nil {
		log.Fatal(err)
	}
	for _, token := range tokens {
		fmt.Printf("%v\n\tToken ID: %q\n\tIssuer:   %v\n",
			token.ChainID, token.TokenID, token.IssuerChainID)
	}
}

func printChainStats(chainID *factom.Bytes32) {
	log.Debugf("Fetching stats for %v...", chainID)
	stats, err := FATClient.GetStats(api.ParamsToken{ChainID: chainID,
		IncludePending: paramsToken.IncludePending})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(formatStats(chainID, stats))
}

// formatStats renders stats as indented "label: value" lines headed by the
// chain ID.
func formatStats(chainID *factom.Bytes32, stats api.ResultGetStats) string {
	var b strings.Builder
	line := func(label string, value interface{}) {
		fmt.Fprintf(&b, "\t%-22v %v\n", label+":", value)
	}
	fmt.Fprintf(&b, "%v\n", chainID)
	line("Token ID", fmt.Sprintf("%q", stats.TokenID))
	line("Issuer", stats.IssuerChainID)
	if stats.Issuance != nil {
		iss := stats.Issuance
		line("Issuance Entry", stats.IssuanceHash)
		line("Type", iss.Type)
		if len(iss.Symbol) > 0 {
			line("Symbol", iss.Symbol)
		}
		if iss.Supply < 0 {
			line("Max Supply", "unlimited")
		} else {
			line("Max Supply", iss.Supply)
		}
		if len(iss.Metadata) > 0 {
			line("Metadata", string(iss.Metadata))
		}
	}
	line("Circulating", stats.CirculatingSupply)
	line("Burned", stats.Burned)
	line("Transactions", stats.Transactions)
	line("Issued", time.Unix(stats.IssuanceTimestamp, 0))
	if stats.LastTransactionTimestamp > 0 {
		line("Last Transaction", time.Unix(stats.LastTransactionTimestamp, 0))
	}
	return b.String()
}
