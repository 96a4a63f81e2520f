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
	"fmt"
	"math"

	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat0"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var (
	metadata json.RawMessage
	sendFatd bool

	// signers holds the --input signers in the order of the inputs.
	signers []fat.Signer
	// addressValueStrMap holds the --input and --output values as given.
	addressValueStrMap = map[factom.FAAddress]string{}

	signedTx fat.SignedRecord
)

var transactCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transact",
		Aliases: []string{"send", "distribute"},
		Short:   "Sign and send a FAT-0 or FAT-1 transaction",
		Long: `
Build, sign and send a transaction entry to a FAT-0 or FAT-1 token chain. Use
'transact fat0' or 'transact fat1' to match the type of the token chain.

Amounts
        Each --input and --output takes ADDRESS:AMOUNT and may be repeated.
        A FAT-0 AMOUNT is a positive integer:
                FA3SjebEevRe964p4tQ6eieEvzi7puv9JWF3S3Wgw2v3WGKueL3R:150
        A FAT-1 AMOUNT is a list of NF token IDs and ID ranges:
                FA3SjebEevRe964p4tQ6eieEvzi7puv9JWF3S3Wgw2v3WGKueL3R:[1,2,5-100]

Transfers
        Each --input must be a private Fs address. Its key signs the entry,
        in the order the inputs are given. An --output may be an FA or Fs
        address. Sending to "coinbase" (or "burn") burns the tokens.

Minting
        Use --sk1 with the issuer's key instead of any --input to mint new
        tokens from the coinbase address. The input amount is the sum of the
        outputs. FAT-1 mints may attach --nftoken-metadata.

Submission
        The entry is paid for with --ecadr and submitted to factomd, or with
        --send-fatd handed to fatd, which pays for it itself. With --dryrun
        the signed entry is only printed, or only validated by fatd when
        combined with --send-fatd.

Checks
        Before sending, fatd is asked for the chain's type, the balance or
        NF tokens of each input, and for mints the remaining supply. Use
        --force to skip these checks.
`[1:],
		PersistentPreRunE: validateTransactFlags,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["transact"] = transactCmplCmd
	rootCmplCmd.Sub["help"].Sub["transact"] = complete.Command{Sub: complete.Commands{}}

	flags := cmd.PersistentFlags()
	flags.AddFlagSet(ecFlags)
	flags.BoolVar(&sendFatd, "send-fatd", false,
		"Send the tx to fatd instead of factomd")
	flags.VarPF(&sk1, "sk1", "",
		"Secret Identity Key 1 to sign coinbase txs").DefValue = ""
	flags.VarPF((*RawMessage)(&metadata), "metadata", "m",
		"JSON metadata to include in tx")

	generateCmplFlags(cmd, transactCmplCmd.Flags)
	return cmd
}()

var transactCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags),
	Sub:   complete.Commands{},
}

// transaction is implemented by *fat0.Transaction and *fat1.Transaction.
type transaction interface {
	SetChainID(string) error
	SetMetadata(interface{}) error
	AddSigner(fat.Signer)
	Sign() (fat.SignedRecord, error)
}

func validateTransactFlags(cmd *cobra.Command, args []string) error {
	if err := validateChainIDFlags(cmd, args); err != nil {
		return err
	}
	var cmdType fat.Type
	if err := (*Type)(&cmdType).Set(cmd.Name()); err != nil {
		panic(err) // This should never happen.
	}

	flags := cmd.Flags()
	if !flags.Changed("output") {
		return fmt.Errorf("at least one --output is required")
	}
	inputSet := flags.Changed("input")
	sk1Set := flags.Changed("sk1")
	if !inputSet && !sk1Set {
		return fmt.Errorf("--sk1 or at least one --input is required")
	}
	if inputSet && sk1Set {
		return fmt.Errorf("--sk1 and --input may not be used at the same time")
	}
	if !dryRun && !sendFatd && !flags.Changed("ecadr") {
		return fmt.Errorf("--ecadr is required unless --send-fatd or --dryrun")
	}

	// All subsequent errors are not issues with correct use of flags, so
	// avoid printing Usage() by calling log.Fatal() instead of returning.

	if sk1Set {
		signers = []fat.Signer{fat.IssuerSigner(sk1)}
		var err error
		switch cmdType {
		case fat0.Type:
			err = setFAT0Coinbase(&fat0Tx)
		case fat1.Type:
			err = setFAT1Coinbase(&fat1Tx)
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Debugf("Preparing %v Transaction Entry...", cmdType)
	var tx transaction
	switch cmdType {
	case fat0.Type:
		tx = &fat0Tx
	case fat1.Type:
		if err := applyTokenMetadata(&fat1Tx); err != nil {
			log.Fatal(err)
		}
		tx = &fat1Tx
	}
	if err := tx.SetChainID(paramsToken.ChainID.String()); err != nil {
		log.Fatal(err)
	}
	if len(metadata) > 0 {
		if err := tx.SetMetadata(metadata); err != nil {
			log.Fatal(err)
		}
	}
	for _, s := range signers {
		tx.AddSigner(s)
	}
	var err error
	if signedTx, err = tx.Sign(); err != nil {
		log.Fatal(err)
	}
	log.Debugf("Transaction Entry Content: %s", signedTx.Content)

	if !force {
		if err := checkTransaction(cmdType, sk1Set); err != nil {
			log.Fatal(err)
		}
	}
	return nil
}

// checkTransaction queries fatd to ensure that the transaction will be
// considered valid.
func checkTransaction(cmdType fat.Type, coinbase bool) error {
	log.Debug("Checking token chain status...")
	params := chainParams()
	stats, err := FATClient.GetStats(params)
	if err != nil {
		return err
	}
	if stats.Issuance == nil {
		return fmt.Errorf("token chain %v is not issued", params.ChainID)
	}
	// Verify we are using the right command for this token type.
	if cmdType != stats.Issuance.Type {
		return fmt.Errorf("incorrect token type: expected %v, but chain is %v",
			cmdType, stats.Issuance.Type)
	}

	if coinbase {
		log.Debug("Validating coinbase transaction...")
		var issuing uint64
		switch cmdType {
		case fat0.Type:
			issuing, _ = fat0Tx.Inputs.Sum()
		case fat1.Type:
			issuing = uint64(fat1Tx.Inputs.NumNFTokenIDs())
		}
		issued := stats.CirculatingSupply + stats.Burned
		if stats.Issuance.Supply != -1 &&
			issuing+issued > uint64(stats.Issuance.Supply) {
			return fmt.Errorf(
				"invalid coinbase transaction: exceeds max supply")
		}
		return nil
	}

	switch cmdType {
	case fat0.Type:
		for _, in := range fat0Tx.Inputs {
			if err := checkBalance(params, in.Address, in.Amount); err != nil {
				return err
			}
		}
	case fat1.Type:
		for _, in := range fat1Tx.Inputs {
			if err := checkBalance(params, in.Address,
				uint64(in.Tokens.Len())); err != nil {
				return err
			}
			if err := checkOwnership(params, in.Address, in.Tokens); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkBalance(params api.ParamsToken, adr factom.FAAddress, amount uint64) error {
	log.Debugf("Checking FAT Token balance... %v", adr)
	balance, err := FATClient.GetBalance(api.ParamsGetBalance{
		ParamsToken: params, Address: &adr})
	if err != nil {
		return err
	}
	if amount > balance {
		return fmt.Errorf("--input %v:%v has insufficient balance (%v)",
			adr, addressValueStrMap[adr], balance)
	}
	return nil
}

func checkOwnership(params api.ParamsToken, adr factom.FAAddress,
	amount fat1.NFTokenAmount) error {
	log.Debugf("Checking FAT NF Token ownership... %v", adr)
	owned, err := FATClient.GetNFBalance(api.ParamsGetNFBalance{
		ParamsToken:      params,
		ParamsPagination: api.ParamsPagination{Limit: math.MaxUint64},
		Address:          &adr})
	if err != nil {
		return err
	}
	tkns, err := amount.NFTokens()
	if err != nil {
		return err
	}
	if err := owned.ContainsAll(tkns); err != nil {
		return fmt.Errorf("--input %v:%v: %w",
			adr, addressValueStrMap[adr], err)
	}
	return nil
}

func transact(cmd *cobra.Command, _ []string) {
	if dryRun && !sendFatd {
		printRecord(signedTx)
		return
	}
	if sendFatd {
		log.Debugf("Sending the Transaction Entry to fatd... dryrun: %v",
			dryRun)
		res, err := FATClient.SendSignedRecord(signedTx, dryRun)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Transaction Entry Hash: %v\n", res.Hash)
		fmt.Printf("Chain ID: %v\n", res.ChainID)
		if res.TxID != nil {
			fmt.Printf("Factom Tx ID: %v\n", res.TxID)
		}
		return
	}

	log.Debugf("Submitting the %v Transaction Entry to the Factom blockchain...",
		cmd.Name())
	e := signedTx.Entry()
	hash, err := e.ComputeHash()
	if err != nil {
		log.Fatal(err)
	}
	result, err := signedTx.Submit(FactomClient, es, wait)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Transaction Entry Created: %v\n", hash)
	fmt.Printf("Chain ID: %v\n", signedTx.ChainID)
	fmt.Printf("Reveal: %s\n", result)
}
