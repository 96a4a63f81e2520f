package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat0"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var (
	paramsGetTxs = api.ParamsGetTransactions{
		ParamsPagination: api.ParamsPagination{Page: new(uint64)},
		StartHash:        new(factom.Bytes32),
		NFTokenID:        new(fat1.NFTokenID),
	}
	to, from bool
	rawTxs   bool
	txHashes []factom.Bytes32
)

var getTxsCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
transactions --chainid <chain-id> [TXHASH...]
        [--page <page>] [--limit <limit>] [--order <"asc" | "desc">]
        [--starttx <tx-hash>] [--nftokenid <nf-token-id>]
        [--address <FA> [--address <FA>]... [--to | --from]] [--raw]
`[1:],
		Aliases: []string{"transaction", "txs", "tx"},
		Short:   "Look up or search the txs of a token chain",
		Long: `
Print the transactions of the token chain given by --chainid.

With TXHASH arguments, the transaction with each entry hash is printed, and
only the global flags may be used.

Without arguments, fatd is searched and one page of results is printed. The
search may be limited to txs sent --to or --from any of the given --address
flags, and on a FAT-1 chain to txs that move a single --nftokenid.

The inputs and outputs of each tx are printed one per line unless --raw is
used, in which case the tx content is printed as fatd returned it.
`[1:],
		Args:    getTxsArgs,
		PreRunE: validateGetTxsFlags,
		Run:     getTxs,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["transactions"] = getTxsCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["transactions"] = complete.Command{}

	flags := cmd.Flags()
	flags.Uint64VarP(paramsGetTxs.Page, "page", "p", 1, "Page of results")
	flags.Uint64VarP(&paramsGetTxs.Limit, "limit", "l", 10, "Max txs per page")
	flags.VarPF((*txOrder)(&paramsGetTxs.Order), "order", "",
		"Order of results by entry time").DefValue = "asc"
	flags.BoolVar(&to, "to", false, "Only txs sent to an --address")
	flags.BoolVar(&from, "from", false, "Only txs sent from an --address")
	flags.VarPF(paramsGetTxs.StartHash, "starttx", "",
		"Entry hash of the first tx to return").DefValue = ""
	flags.Uint64Var((*uint64)(paramsGetTxs.NFTokenID), "nftokenid", 0,
		"Only txs that move this NFTokenID")
	flags.VarPF((*FAAddressList)(&paramsGetTxs.Addresses), "address", "a",
		"Only txs involving this address, may be repeated").DefValue = ""
	flags.BoolVar(&rawTxs, "raw", false, "Print the tx content unparsed")

	generateCmplFlags(cmd, getTxsCmplCmd.Flags)
	return cmd
}()

var getTxsCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags,
		complete.Flags{"--order": complete.PredictSet("asc", "desc")}),
	Args: complete.PredictAnything,
}

func getTxsArgs(_ *cobra.Command, args []string) error {
	txHashes = make([]factom.Bytes32, 0, len(args))
	seen := make(map[factom.Bytes32]struct{}, len(args))
	for _, arg := range args {
		var hash factom.Bytes32
		if err := hash.Set(arg); err != nil {
			return fmt.Errorf("invalid TXHASH %q: %w", arg, err)
		}
		if _, ok := seen[hash]; ok {
			return fmt.Errorf("duplicate TXHASH: %v", hash)
		}
		seen[hash] = struct{}{}
		txHashes = append(txHashes, hash)
	}
	return nil
}

// searchFlags may only be used without TXHASH arguments.
var searchFlags = []string{"page", "limit", "order", "starttx",
	"to", "from", "nftokenid", "address"}

func validateGetTxsFlags(cmd *cobra.Command, args []string) error {
	if err := validateChainIDFlags(cmd, args); err != nil {
		return err
	}
	paramsGetTxs.ParamsToken = chainParams()

	flags := cmd.LocalFlags()
	if len(txHashes) > 0 {
		for _, name := range searchFlags {
			if flags.Changed(name) {
				return fmt.Errorf("--%v may not be used with TXHASH", name)
			}
		}
		return nil
	}

	if (to || from) && len(paramsGetTxs.Addresses) == 0 {
		return fmt.Errorf("--to and --from require an --address")
	}
	// Both --to and --from is the same as neither.
	switch {
	case to && !from:
		paramsGetTxs.ToFrom = "to"
	case from && !to:
		paramsGetTxs.ToFrom = "from"
	}
	if !flags.Changed("starttx") {
		paramsGetTxs.StartHash = nil
	}
	if !flags.Changed("nftokenid") {
		paramsGetTxs.NFTokenID = nil
	}
	return nil
}

func getTxs(_ *cobra.Command, _ []string) {
	var typ fat.Type
	if !rawTxs {
		log.Debugf("Fetching token type... %v", paramsToken.ChainID)
		stats, err := FATClient.GetStats(chainParams())
		if err != nil {
			log.Fatal(err)
		}
		if stats.Issuance == nil {
			log.Fatalf("token chain %v is not issued", paramsToken.ChainID)
		}
		typ = stats.Issuance.Type
	}

	var results []api.ResultGetTransaction
	if len(txHashes) == 0 {
		log.Debugf("Searching txs... %v", paramsToken.ChainID)
		var err error
		if results, err = FATClient.GetTransactions(paramsGetTxs); err != nil {
			log.Fatal(err)
		}
	}
	params := api.ParamsGetTransaction{ParamsToken: paramsGetTxs.ParamsToken}
	for i := range txHashes {
		log.Debugf("Fetching tx... %v", txHashes[i])
		params.Hash = &txHashes[i]
		result, err := FATClient.GetTransaction(params)
		if err != nil {
			log.Fatal(err)
		}
		results = append(results, result)
	}

	for _, result := range results {
		if err := printTx(typ, result); err != nil {
			log.Fatal(err)
		}
	}
}

// printTx prints result, listing its inputs and outputs unless --raw.
func printTx(typ fat.Type, result api.ResultGetTransaction) error {
	fmt.Println("TX Hash:", result.Hash)
	fmt.Println("Timestamp:", time.Unix(result.Timestamp, 0))
	if result.Pending {
		fmt.Println("Pending: true")
	}
	defer fmt.Println()
	if rawTxs {
		fmt.Printf("TX: %s\n", result.Tx)
		return nil
	}
	var inputs, outputs []string
	var metadata []byte
	switch typ {
	case fat0.Type:
		tx, err := result.FAT0()
		if err != nil {
			return err
		}
		for _, in := range tx.Inputs {
			inputs = append(inputs, fmt.Sprintf("%v: %v", in.Address, in.Amount))
		}
		for _, out := range tx.Outputs {
			outputs = append(outputs,
				fmt.Sprintf("%v: %v", out.Address, out.Amount))
		}
		metadata = tx.Metadata()
	case fat1.Type:
		tx, err := result.FAT1()
		if err != nil {
			return err
		}
		for _, in := range tx.Inputs {
			inputs = append(inputs, fmt.Sprintf("%v: %v", in.Address, in.Tokens))
		}
		for _, out := range tx.Outputs {
			outputs = append(outputs,
				fmt.Sprintf("%v: %v", out.Address, out.Tokens))
		}
		metadata = tx.Metadata()
	}
	fmt.Printf("Inputs:\n  %v\n", strings.Join(inputs, "\n  "))
	fmt.Printf("Outputs:\n  %v\n", strings.Join(outputs, "\n  "))
	if len(metadata) > 0 {
		fmt.Printf("Metadata: %s\n", metadata)
	}
	return nil
}

// FAAddressList is a repeatable flag of FA addresses.
type FAAddressList []factom.FAAddress

func (adrs *FAAddressList) Set(adrStr string) error {
	adr, err := factom.NewFAAddress(adrStr)
	if err != nil {
		return err
	}
	*adrs = append(*adrs, adr)
	return nil
}
func (adrs FAAddressList) String() string {
	return fmt.Sprintf("%v", []factom.FAAddress(adrs))
}
func (adrs FAAddressList) Type() string {
	return "FAAddress"
}

type txOrder string

func (o *txOrder) Set(str string) error {
	switch strings.ToLower(str) {
	case "asc", "ascending", "earliest":
		*o = "asc"
	case "desc", "descending", "latest":
		*o = "desc"
	default:
		return fmt.Errorf(`must be "asc" or "desc"`)
	}
	return nil
}
func (o txOrder) String() string {
	return string(o)
}
func (o txOrder) Type() string {
	return "asc|desc"
}
