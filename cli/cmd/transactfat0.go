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
	"fmt"
	"strconv"
	"strings"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat0"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var fat0Tx = *fat0.NewTransaction()

var transactFAT0Cmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: `
fat0 --ecadr <Es> --chainid <chain-id> [--metadata JSON]
        --input <Fs>:<amount> [--input <Fs>:<amount>]...
        --output <FA | Fs>:<amount> [--output <FA | Fs>:<amount>]...

  fat-cli transact fat0 --ecadr <Es> --chainid <chain-id> [--metadata JSON]
        --sk1 <sk1-key>
        --output <FA | Fs>:<amount> [--output <FA | Fs>:<amount>]...
`[1:],
		Aliases: []string{"fat-0", "FAT0", "FAT-0"},
		Short:   "Send or mint FAT-0 tokens",
		Long: `
Sign and send a FAT-0 transaction to the token chain given by --chainid, or
by --tokenid and --identity.

Each <amount> is a positive integer. A transfer must spend exactly what it
sends: the --input amounts must add up to the --output amounts. A mint with
--sk1 takes its coinbase input from the sum of the --output amounts.

Example
        fat-cli transact fat0 --chainid <chain-id> --ecadr <Es> \
                --input Fs2mGpZiHMwiEfe7kBD5ZYpXJsaxb3gUX258PJsAcNJ8GxFy8pBt:150 \
                --output FA3SjebEevRe964p4tQ6eieEvzi7puv9JWF3S3Wgw2v3WGKueL3R:150

See 'fat-cli transact --help' for submission and checks.
`[1:],
		Args: cobra.ExactArgs(0),
		Run:  transact,
	}
	transactCmd.AddCommand(cmd)
	transactCmplCmd.Sub["fat0"] = transactFAT0CmplCmd
	rootCmplCmd.Sub["help"].Sub["transact"].Sub["fat0"] = complete.Command{}

	flags := cmd.Flags()
	flags.VarPF(&addressAmountFlag{m: &fat0Tx.Inputs, input: true},
		"input", "", "").DefValue = ""
	flags.VarPF(&addressAmountFlag{m: &fat0Tx.Outputs},
		"output", "o", "").DefValue = ""

	generateCmplFlags(cmd, transactFAT0CmplCmd.Flags)
	return cmd
}()

var transactFAT0CmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags, complete.Flags{
		"--input":  complete.PredictAnything,
		"--output": predictCoinbaseColon,
		"-o":       predictCoinbaseColon,
	}),
}

// setFAT0Coinbase sets the coinbase input of tx to the sum of its outputs.
func setFAT0Coinbase(tx *fat0.Transaction) error {
	if _, ok := tx.Outputs.Get(fat.Coinbase()); ok {
		return fmt.Errorf("a coinbase transaction may not burn tokens")
	}
	sum, err := tx.Outputs.Sum()
	if err != nil {
		return err
	}
	tx.Inputs = nil
	tx.Inputs.Set(fat.Coinbase(), sum)
	return nil
}

// addressAmountFlag parses <address>:<amount> into an AddressAmountMap. The
// Fs keys of inputs are appended to signers in the order they are given.
type addressAmountFlag struct {
	m     *fat0.AddressAmountMap
	input bool
}

func (f *addressAmountFlag) Set(data string) error {
	adrStr, amountStr, err := splitAddressValue(data)
	if err != nil {
		return err
	}
	adr, fs, err := parseFlagAddress(adrStr, f.input)
	if err != nil {
		return err
	}
	if _, ok := f.m.Get(adr); ok {
		return fmt.Errorf("duplicate address: %v", adr)
	}
	amount, err := parsePositiveInt(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	f.m.Set(adr, amount)
	if f.input {
		signers = append(signers, fat.TransferSigner(fs))
		addressValueStrMap[adr] = amountStr
	}
	return nil
}
func (f *addressAmountFlag) String() string {
	if f.m == nil || len(*f.m) == 0 {
		return ""
	}
	data, _ := f.m.MarshalJSON()
	return string(data)
}
func (*addressAmountFlag) Type() string {
	return "<FA | Fs>:<amount>"
}

// splitAddressValue splits "<address>:<value>" on the first ':'.
func splitAddressValue(data string) (string, string, error) {
	strs := strings.SplitN(data, ":", 2)
	if len(strs) != 2 || len(strs[0]) == 0 || len(strs[1]) == 0 {
		return "", "", fmt.Errorf("invalid format")
	}
	return strs[0], strs[1], nil
}

// parseFlagAddress parses an --input or --output address. Inputs must be Fs
// addresses, as their keys sign the transaction. Outputs may be FA or Fs
// addresses, or the keyword "coinbase" or "burn".
func parseFlagAddress(adrStr string, input bool) (
	factom.FAAddress, factom.FsAddress, error) {
	var fa factom.FAAddress
	var fs factom.FsAddress
	switch adrStr {
	case "coinbase", "burn":
		if input {
			return fa, fs, fmt.Errorf(
				"the coinbase address may not be an --input, use --sk1")
		}
		return fat.Coinbase(), fs, nil
	}
	if err := fs.Set(adrStr); err == nil {
		fa = fs.FAAddress()
		if input && fa == fat.Coinbase() {
			return fa, fs, fmt.Errorf(
				"the coinbase address may not be an --input, use --sk1")
		}
		return fa, fs, nil
	}
	if input {
		return fa, fs, fmt.Errorf("invalid address: --input requires an Fs address")
	}
	if err := fa.Set(adrStr); err != nil {
		return fa, fs, fmt.Errorf("invalid address: %w", err)
	}
	return fa, fs, nil
}

func parsePositiveInt(intStr string) (uint64, error) {
	if len(intStr) == 0 {
		return 0, fmt.Errorf("empty")
	}
	if strings.HasPrefix(intStr, "-") {
		return 0, fmt.Errorf("negative")
	}
	amount, err := strconv.ParseUint(intStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, fmt.Errorf("zero")
	}
	return amount, nil
}
