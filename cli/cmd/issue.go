// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

// ErrorCodeTokenNotFound is the fatd error code for a token chain that is not
// issued or not tracked.
const ErrorCodeTokenNotFound = -32800

var (
	es     factom.EsAddress
	sk1    factom.SK1Key
	force  bool
	dryRun bool
	wait   time.Duration

	issuance struct {
		Type     fat.Type
		Supply   int64
		Symbol   string
		Metadata json.RawMessage
	}
)

var ecFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.VarPF(&es, "ecadr", "e", "Es address to pay for entries").
		DefValue = "none"
	flags.BoolVarP(&force, "force", "f", false,
		"Skip sanity checks like balances, supply and token existence")
	flags.BoolVar(&dryRun, "dryrun", false,
		"Sign and print the entry without submitting it")
	flags.DurationVar(&wait, "wait", fat.DefaultWait,
		"Delay between each commit and its reveal")
	return flags
}()

var issueCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
issue --ecadr <Es> --tokenid <token-id> --identity <issuer-chain-id>
        --sk1 <sk1-key> --type <"FAT-0" | "FAT-1"> --supply <supply>
        [--symbol <symbol>] [--metadata <JSON>]`[1:],
		Short: "Issue a new token chain",
		Long: `
Issue a new FAT-0 or FAT-1 token chain.

Issuing a new FAT token chain is a two step process. First, the token chain
is created with the correct Name IDs in the first entry. Second, after a short
wait, the Token Initialization Entry signed by the --sk1 key of the --identity
is submitted. Both entries are paid for by the --ecadr.

Sanity Checks
        Unless --force is used, fatd is queried to ensure that the token has
        not already been issued.
`[1:],
		Args:    cobra.ExactArgs(0),
		PreRunE: validateIssueFlags,
		Run:     issue,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["issue"] = issueCmplCmd
	rootCmplCmd.Sub["help"].Sub["issue"] = complete.Command{}

	flags := cmd.Flags()
	flags.AddFlagSet(ecFlags)
	flags.VarPF((*Type)(&issuance.Type), "type", "",
		"Token standard to use").DefValue = ""
	flags.VarPF(&sk1, "sk1", "", "Secret Identity Key 1 to sign entry").DefValue = ""
	flags.Int64Var(&issuance.Supply, "supply", 0,
		"Max Token supply, use -1 for unlimited")
	flags.StringVar(&issuance.Symbol, "symbol", "", "Optional abbreviated token symbol")
	flags.VarPF((*RawMessage)(&issuance.Metadata), "metadata", "m",
		"JSON metadata to include in the Initialization Entry")

	generateCmplFlags(cmd, issueCmplCmd.Flags)
	return cmd
}()

var issueCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, complete.Flags{
		"--type": complete.PredictSet(fat.TypeFAT0.String(),
			fat.TypeFAT1.String())}),
}

var newIssuance *fat.Issuance

func validateIssueFlags(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	for _, flg := range []string{"tokenid", "identity", "type", "supply", "sk1"} {
		if !flags.Changed(flg) {
			return fmt.Errorf("--" + flg + " is required")
		}
	}
	if flags.Changed("chainid") {
		return fmt.Errorf("--chainid may not be used with issue")
	}
	if !dryRun && !flags.Changed("ecadr") {
		return fmt.Errorf("--ecadr is required")
	}

	// All subsequent errors are not issues with correct use of flags, so
	// avoid printing Usage() by calling log.Fatal() instead of returning.

	opts := []fat.IssuanceOption{
		fat.WithTokenID(paramsToken.TokenID),
		fat.WithIssuerID(paramsToken.IssuerChainID.String()),
		fat.WithSupply(issuance.Supply),
		fat.WithECPrivateKey(es),
		fat.WithIssuerKey(sk1),
	}
	if len(issuance.Symbol) > 0 {
		opts = append(opts, fat.WithSymbol(issuance.Symbol))
	}
	if len(issuance.Metadata) > 0 {
		opts = append(opts, fat.WithMetadata(issuance.Metadata))
	}
	var err error
	newIssuance, err = fat.NewIssuance(issuance.Type, opts...)
	if err != nil {
		log.Fatal(err)
	}
	chainID, err := newIssuance.CreateChainID()
	if err != nil {
		log.Fatal(err)
	}
	*paramsToken.ChainID = chainID

	if !force {
		log.Debugf("Checking token chain status... %v", chainID)
		if err := checkNotIssued(chainParams()); err != nil {
			log.Fatal(err)
		}
	}
	return nil
}

// checkNotIssued returns nil if fatd reports that the token is not issued.
func checkNotIssued(params api.ParamsToken) error {
	_, err := FATClient.GetStats(params)
	if err == nil {
		return fmt.Errorf("token is already initialized: %v", params.ChainID)
	}
	var rpcErr jrpc.Error
	if errors.As(err, &rpcErr) && rpcErr.Code == ErrorCodeTokenNotFound {
		return nil
	}
	return err
}

func issue(_ *cobra.Command, _ []string) {
	initEntry, err := newIssuance.Sign()
	if err != nil {
		log.Fatal(err)
	}
	if dryRun {
		printRecord(initEntry)
		return
	}
	log.Debug("Creating the token chain and submitting the Token " +
		"Initialization Entry to the Factom blockchain...")
	result, err := newIssuance.IssueToken(FactomClient, wait)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Chain ID: %v\n", newIssuance.ChainID())
	fmt.Printf("Token Initialization Entry: %s\n", result)
}

// printRecord prints the entry for r without submitting it.
func printRecord(r fat.SignedRecord) {
	e := r.Entry()
	hash, err := e.ComputeHash()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Chain ID: %v\n", r.ChainID)
	fmt.Printf("Entry Hash: %v\n", hash)
	for i, extID := range r.ExtIDs {
		fmt.Printf("ExtIDs[%v]: %v\n", i, extID)
	}
	fmt.Printf("Content: %s\n", r.Content)
}

// Type parses the token type flag, accepting "FAT0" for "FAT-0".
type Type fat.Type

func (t *Type) Set(typeStr string) error {
	typeStr = strings.ToUpper(typeStr)
	switch typeStr {
	case "FAT0":
		typeStr = "FAT-0"
	case "FAT1":
		typeStr = "FAT-1"
	}
	return (*fat.Type)(t).Set(typeStr)
}

func (t Type) String() string {
	return fat.Type(t).String()
}
func (t Type) Type() string {
	return `<"FAT-0" | "FAT-1">`
}

// RawMessage is a JSON flag.
type RawMessage json.RawMessage

func (r *RawMessage) Set(data string) error {
	if !json.Valid([]byte(data)) {
		return fmt.Errorf("invalid JSON")
	}
	*r = RawMessage(data)
	return nil
}

func (r RawMessage) String() string {
	return string(r)
}

func (RawMessage) Type() string {
	return "JSON"
}
