package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat0"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	addresses   []factom.FAAddress
	chainScoped bool
)

var getBalanceCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
balance [--chainid <chain-id>] ADDRESS...`[1:],
		Aliases: []string{"balances"},
		Short:   "Get balances for addresses",
		Long: `
Get the balance of each ADDRESS on the given --chainid.

Returns the total balance for FAT-0 tokens or a list of NF Token IDs for FAT-1
tokens.

If no chain is given, the balances of each ADDRESS on every token chain tracked
by fatd are returned.
`[1:],
		Args:    getBalanceArgs,
		PreRunE: validateGetBalanceFlags,
		Run:     getBalance,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["balance"] = getBalanceCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["balance"] = complete.Command{}
	generateCmplFlags(cmd, getBalanceCmplCmd.Flags)
	return cmd
}()

var getBalanceCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags),
	Args:  complete.PredictAnything,
}

func getBalanceArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}
	addresses = make([]factom.FAAddress, len(args))
	dupl := make(map[factom.FAAddress]struct{}, len(args))
	for i := range addresses {
		adr := &addresses[i]
		if err := adr.Set(args[i]); err != nil {
			return err
		}
		if _, ok := dupl[*adr]; ok {
			return fmt.Errorf("duplicate: %v", adr)
		}
		dupl[*adr] = struct{}{}
	}
	return nil
}

func validateGetBalanceFlags(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	chainScoped = flags.Changed("chainid") ||
		flags.Changed("tokenid") || flags.Changed("identity")
	if !chainScoped {
		return nil
	}
	return validateChainIDFlags(cmd, args)
}

func getBalance(_ *cobra.Command, _ []string) {
	var fetch func(factom.FAAddress) (string, error)
	if chainScoped {
		log.Debugf("Fetching token chain details... %v", paramsToken.ChainID)
		stats, err := FATClient.GetStats(chainParams())
		if err != nil {
			log.Fatal(err)
		}
		if stats.Issuance == nil {
			log.Fatalf("token chain %v is not issued", paramsToken.ChainID)
		}
		switch stats.Issuance.Type {
		case fat0.Type:
			log.Debug("Fetching balances...")
			fetch = fetchFAT0Balance(chainParams())
		case fat1.Type:
			log.Debug("Fetching NF balances...")
			fetch = fetchFAT1Balance(chainParams())
		}
	} else {
		log.Debug("Fetching balances for all tracked tokens...")
		fetch = fetchAllBalances(paramsToken.IncludePending)
	}

	balances, err := fetchBalances(addresses, fetch)
	if err != nil {
		log.Fatal(err)
	}
	for i, adr := range addresses {
		fmt.Println(adr, balances[i])
	}
}

// fetchBalances calls fetch for each of adrs concurrently and returns the
// results in the order of adrs.
func fetchBalances(adrs []factom.FAAddress,
	fetch func(factom.FAAddress) (string, error)) ([]string, error) {
	balances := make([]string, len(adrs))
	var g errgroup.Group
	for i, adr := range adrs {
		i, adr := i, adr
		g.Go(func() error {
			balance, err := fetch(adr)
			if err != nil {
				return fmt.Errorf("%v: %w", adr, err)
			}
			balances[i] = balance
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return balances, nil
}

func fetchFAT0Balance(params api.ParamsToken) func(factom.FAAddress) (string, error) {
	return func(adr factom.FAAddress) (string, error) {
		balance, err := FATClient.GetBalance(api.ParamsGetBalance{
			ParamsToken: params, Address: &adr})
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(balance, 10), nil
	}
}

func fetchFAT1Balance(params api.ParamsToken) func(factom.FAAddress) (string, error) {
	return func(adr factom.FAAddress) (string, error) {
		tkns, err := FATClient.GetNFBalance(api.ParamsGetNFBalance{
			ParamsToken:      params,
			ParamsPagination: api.ParamsPagination{Limit: math.MaxUint64},
			Address:          &adr})
		if err != nil {
			return "", err
		}
		if len(tkns) == 0 {
			return "[]", nil
		}
		data, err := json.Marshal(tkns)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func fetchAllBalances(includePending bool) func(factom.FAAddress) (string, error) {
	return func(adr factom.FAAddress) (string, error) {
		balances, err := FATClient.GetBalances(api.ParamsGetBalances{
			Address: &adr, IncludePending: includePending})
		if err != nil {
			return "", err
		}
		return formatBalances(balances), nil
	}
}

// formatBalances lists balances by chain ID in lexical order.
func formatBalances(balances api.ResultGetBalances) string {
	if len(balances) == 0 {
		return "{}"
	}
	lines := make([]string, 0, len(balances))
	for chainID, balance := range balances {
		lines = append(lines, fmt.Sprintf("\n  %v: %v", chainID, balance))
	}
	sort.Strings(lines)
	return strings.Join(lines, "")
}
