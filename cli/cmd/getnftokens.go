package cmd

import (
	"fmt"
	"strconv"

	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var (
	paramsGetNFTokens = api.ParamsGetAllNFTokens{
		ParamsPagination: api.ParamsPagination{Page: new(uint64)},
	}
	nfTokenIDs []fat1.NFTokenID
)

var getNFTokensCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
nftokens --chainid <chain-id> [NFTOKENID...]
        [--page <page>] [--limit <limit>] [--order <"asc" | "desc">]
`[1:],
		Aliases: []string{"nftoken", "nfts", "nft"},
		Short:   "List FAT-1 NF tokens, their owners and metadata",
		Long: `
For the given FAT-1 --chainid, get the owner, creation tx and metadata of each
NFTOKENID, or a paginated list of all NF tokens if no NFTOKENID is given.
`[1:],
		Args:    getNFTokensArgs,
		PreRunE: validateChainIDFlags,
		Run:     getNFTokens,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["nftokens"] = getNFTokensCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["nftokens"] = complete.Command{}

	flags := cmd.Flags()
	flags.Uint64VarP(paramsGetNFTokens.Page, "page", "p", 1,
		"Page of returned NF tokens")
	flags.Uint64VarP(&paramsGetNFTokens.Limit, "limit", "l", 10,
		"Limit of returned NF tokens")
	flags.VarPF((*txOrder)(&paramsGetNFTokens.Order), "order", "",
		"Order of returned NF tokens").DefValue = "asc"

	generateCmplFlags(cmd, getNFTokensCmplCmd.Flags)
	return cmd
}()

var getNFTokensCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags,
		complete.Flags{"--order": complete.PredictSet("asc", "desc")}),
	Args: complete.PredictAnything,
}

func getNFTokensArgs(_ *cobra.Command, args []string) error {
	nfTokenIDs = make([]fat1.NFTokenID, len(args))
	for i, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid NFTokenID: %w", err)
		}
		nfTokenIDs[i] = fat1.NFTokenID(id)
	}
	return nil
}

func getNFTokens(_ *cobra.Command, _ []string) {
	if len(nfTokenIDs) == 0 {
		log.Debugf("Fetching NF tokens for chain... %v", paramsToken.ChainID)
		paramsGetNFTokens.ParamsToken = chainParams()
		results, err := FATClient.GetNFTokens(paramsGetNFTokens)
		if err != nil {
			log.Fatal(err)
		}
		for _, result := range results {
			printNFToken(result)
		}
		return
	}
	params := api.ParamsGetNFToken{ParamsToken: chainParams()}
	for _, id := range nfTokenIDs {
		id := id
		log.Debugf("Fetching NF token... %v", id)
		params.NFTokenID = &id
		result, err := FATClient.GetNFToken(params)
		if err != nil {
			log.Fatal(err)
		}
		printNFToken(result)
	}
}

func printNFToken(result api.ResultGetNFToken) {
	fmt.Println("NFTokenID:", result.NFTokenID)
	if result.Burned {
		fmt.Println("Owner: burned")
	} else {
		fmt.Println("Owner:", result.Owner)
	}
	fmt.Println("Creation TX:", result.CreationTx)
	if len(result.Metadata) > 0 {
		fmt.Printf("Metadata: %s\n", result.Metadata)
	}
	fmt.Println()
}
