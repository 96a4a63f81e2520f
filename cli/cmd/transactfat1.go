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
	"strconv"
	"strings"

	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var fat1Tx = *fat1.NewTransaction()

// nfTokenMetadata holds the --nftoken-metadata values in the order given.
var nfTokenMetadata []fat1.NFTokenMetadata

var transactFAT1Cmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: `
fat1 --ecadr <Es> --chainid <chain-id> [--metadata JSON]
        --input <Fs>:<nf-token-ids> [--input <Fs>:<nf-token-ids>]...
        --output <FA | Fs>:<nf-token-ids> [--output <FA | Fs>:<nf-token-ids>]...

  fat-cli transact fat1 --ecadr <Es> --chainid <chain-id> [--metadata JSON]
        --sk1 <sk1-key> [--nftoken-metadata <nf-token-ids>:JSON]...
        --output <FA | Fs>:<nf-token-ids> [--output <FA | Fs>:<nf-token-ids>]...
`[1:],
		Aliases: []string{"fat-1", "FAT1", "FAT-1"},
		Short:   "Send or mint FAT-1 tokens",
		Long: `
Sign and send a FAT-1 transaction moving non-fungible tokens on the token chain
given by --chainid, or by --tokenid and --identity.

Inputs and Outputs
        --input expects an Fs address, and --output an FA or Fs address,
        followed by ":", and then a list of NFTokenIDs and NFTokenIDRanges
        within brackets. An NFTokenIDRange is two NFTokenIDs separated by
        "-", and includes both. The list is kept in the order given.

        For example,
                FA3SjebEevRe964p4tQ6eieEvzi7puv9JWF3S3Wgw2v3WGKueL3R:[1,2,5-100]
                Fs2mGpZiHMwiEfe7kBD5ZYpXJsaxb3gUX258PJsAcNJ8GxFy8pBt:[1,2,5-100]

        For normal transactions, the --input NFTokenIDs must be exactly the
        --output NFTokenIDs.

        For coinbase transactions, the coinbase input is all of the --output
        NFTokenIDs.

NFToken Metadata
        Coinbase transactions may assign JSON metadata to the NFTokenIDs they
        create using --nftoken-metadata, for example,
                [1,5-10]:{"color":"red"}

See 'fat-cli transact --help' for more information about transactions.
`[1:],
		Args: cobra.ExactArgs(0),
		Run:  transact,
	}
	transactCmd.AddCommand(cmd)
	transactCmplCmd.Sub["fat1"] = transactFAT1CmplCmd
	rootCmplCmd.Sub["help"].Sub["transact"].Sub["fat1"] = complete.Command{}

	flags := cmd.Flags()
	flags.VarPF(&addressNFTokensFlag{m: &fat1Tx.Inputs, input: true},
		"input", "", "").DefValue = ""
	flags.VarPF(&addressNFTokensFlag{m: &fat1Tx.Outputs},
		"output", "o", "").DefValue = ""
	flags.Var((*nfTokenMetadataFlag)(&nfTokenMetadata), "nftoken-metadata",
		"JSON metadata for the NFTokenIDs of a coinbase transaction")

	generateCmplFlags(cmd, transactFAT1CmplCmd.Flags)
	return cmd
}()

var predictCoinbaseColonOpenBracket = PredictAppend(
	complete.PredictSet("coinbase"), ":[")

var transactFAT1CmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags, complete.Flags{
		"--input":            complete.PredictAnything,
		"--output":           predictCoinbaseColonOpenBracket,
		"-o":                 predictCoinbaseColonOpenBracket,
		"--nftoken-metadata": complete.PredictAnything,
	}),
}

// setFAT1Coinbase sets the coinbase input of tx to all of the NFTokenIDs of
// its outputs.
func setFAT1Coinbase(tx *fat1.Transaction) error {
	if _, ok := tx.Outputs.Get(fat.Coinbase()); ok {
		return fmt.Errorf("a coinbase transaction may not burn tokens")
	}
	tkns, err := tx.Outputs.AllNFTokens()
	if err != nil {
		return err
	}
	tx.Inputs = nil
	tx.Inputs.Set(fat.Coinbase(), tkns.Compress())
	return nil
}

// applyTokenMetadata adds the --nftoken-metadata to tx, which must be a
// coinbase transaction.
func applyTokenMetadata(tx *fat1.Transaction) error {
	if len(nfTokenMetadata) == 0 {
		return nil
	}
	if !tx.IsMint() {
		return fmt.Errorf(
			"--nftoken-metadata may only be used with a coinbase transaction")
	}
	for _, m := range nfTokenMetadata {
		if err := tx.AddTokenMetadata(m.Tokens, m.Metadata); err != nil {
			return err
		}
	}
	return nil
}

// addressNFTokensFlag parses <address>:[<ids>] into an AddressNFTokensMap.
// The Fs keys of inputs are appended to signers in the order they are given.
type addressNFTokensFlag struct {
	m     *fat1.AddressNFTokensMap
	input bool
}

func (f *addressNFTokensFlag) Set(data string) error {
	adrStr, tknIDsStr, err := splitAddressValue(data)
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
	amount, err := parseNFTokenAmount(tknIDsStr)
	if err != nil {
		return err
	}
	f.m.Set(adr, amount)
	if f.input {
		signers = append(signers, fat.TransferSigner(fs))
		addressValueStrMap[adr] = tknIDsStr
	}
	return nil
}
func (f *addressNFTokensFlag) String() string {
	if f.m == nil || len(*f.m) == 0 {
		return ""
	}
	data, _ := f.m.MarshalJSON()
	return string(data)
}
func (*addressNFTokensFlag) Type() string {
	return "<FA | Fs>:[<id>,<min>-<max>]"
}

// nfTokenMetadataFlag parses [<ids>]:<JSON>.
type nfTokenMetadataFlag []fat1.NFTokenMetadata

func (l *nfTokenMetadataFlag) Set(data string) error {
	i := strings.Index(data, "]:")
	if i < 0 {
		return fmt.Errorf("invalid format")
	}
	amount, err := parseNFTokenAmount(data[:i+1])
	if err != nil {
		return err
	}
	metadata := json.RawMessage(data[i+2:])
	if !json.Valid(metadata) {
		return fmt.Errorf("invalid JSON")
	}
	*l = append(*l, fat1.NFTokenMetadata{Tokens: amount, Metadata: metadata})
	return nil
}
func (l nfTokenMetadataFlag) String() string {
	if len(l) == 0 {
		return ""
	}
	data, _ := json.Marshal([]fat1.NFTokenMetadata(l))
	return string(data)
}
func (nfTokenMetadataFlag) Type() string {
	return "[<id>,<min>-<max>]:JSON"
}

// parseNFTokenAmount parses a bracketed, comma separated list of NFTokenIDs
// and NFTokenIDRanges, such as [1,2,5-100].
func parseNFTokenAmount(data string) (fat1.NFTokenAmount, error) {
	if len(data) < 2 || data[0] != '[' || data[len(data)-1] != ']' {
		return nil, fmt.Errorf("invalid NFTokenIDs format")
	}
	data = data[1 : len(data)-1] // Trim '[' and ']'

	var amount fat1.NFTokenAmount
	for _, tknIDStr := range strings.Split(data, ",") {
		tknRangeStrs := strings.Split(tknIDStr, "-")
		switch len(tknRangeStrs) {
		case 1:
			tknID, err := parseNFTokenID(tknIDStr)
			if err != nil {
				return nil, err
			}
			amount = append(amount, tknID)
		case 2:
			var minMax [2]fat1.NFTokenID
			for i, str := range tknRangeStrs {
				tknID, err := parseNFTokenID(str)
				if err != nil {
					return nil, err
				}
				minMax[i] = tknID
			}
			if minMax[0] > minMax[1] {
				return nil, fmt.Errorf("invalid NFTokenIDRange: %v > %v",
					minMax[0], minMax[1])
			}
			amount = append(amount, fat1.NewNFTokenIDRange(minMax[:]...))
		default:
			return nil, fmt.Errorf("invalid NFTokenIDRange format: %v",
				tknIDStr)
		}
	}
	if err := amount.Valid(); err != nil {
		return nil, fmt.Errorf("invalid NFTokens: %w", err)
	}
	return amount, nil
}

func parseNFTokenID(tknIDStr string) (fat1.NFTokenID, error) {
	tknIDStr = strings.TrimSpace(tknIDStr)
	if len(tknIDStr) == 0 {
		return 0, fmt.Errorf("invalid NFTokenID: empty")
	}
	tknID, err := strconv.ParseUint(tknIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid NFTokenID: %w", err)
	}
	return fat1.NFTokenID(tknID), nil
}
