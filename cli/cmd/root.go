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

// Package cmd implements the fat-cli commands.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	_log "github.com/Factom-Asset-Tokens/fatgo/internal/log"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Execute runs fat-cli with the process arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	cfgFile      string
	FATClient    = api.NewClient()
	FactomClient = factom.NewClient()
	Debug        bool
	Verbose      bool

	log = _log.New("fat-cli")

	paramsToken = api.ParamsToken{
		ChainID:       new(factom.Bytes32),
		IssuerChainID: new(factom.Bytes32)}
)

func init() {
	cobra.OnInitialize(initConfig, initClients)
}

func initClients() {
	_log.SetDebug(Verbose)
	FATClient.DebugRequest = Debug
	FactomClient.Factomd.DebugRequest = Debug
	FactomClient.Factomd.Timeout = FATClient.Timeout
}

var apiFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.StringVarP(&FATClient.FatdServer, "fatd", "d", api.FatdDefault,
		"scheme://host:port for fatd")
	flags.StringVarP(&FactomClient.FactomdServer, "factomd", "s",
		factom.FactomdDefault, "scheme://host:port for factomd")
	flags.DurationVar(&FATClient.Timeout, "timeout", 6*time.Second,
		"Timeout for all API requests (i.e. 10s, 1m)")
	flags.BoolVar(&Debug, "debug", false, "Print all RPC requests and responses")
	flags.BoolVarP(&Verbose, "verbose", "v", false, "Print progress details")
	return flags
}()

var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fat-cli",
		Short: "Factom Asset Tokens CLI",
		Long: `
fat-cli explores and transacts on Factom Asset Token chains.

Use 'fat-cli get' to look up balances, token chains, transactions and NF tokens
using the API of a fatd node. Use 'fat-cli transact' to sign and send FAT-0 or
FAT-1 transactions, and 'fat-cli issue' to create and initialize a new token
chain.

Selecting a Token Chain
        Commands that work on a single token chain take either its --chainid,
        or the --tokenid and the --identity chain ID of its issuer.

Endpoints
        fatd is queried at --fatd, http://localhost:8078 by default. Signed
        entries are paid for and submitted directly to factomd at --factomd,
        http://localhost:8088 by default.

Private Keys
        fat-cli does not use factom-walletd. Private keys are given directly
        with --ecadr, --sk1 and the --input flags of 'fat-cli transact'.

Configuration
        Global flags may also be set in $HOME/.fat-cli.yaml, or in the file
        given by --config, or in FAT_ environment variables named after the
        flag, for example FAT_FATD=http://fatd.example.com:8078. Command line
        flags take precedence over both.
`[1:],
		Args:    cobra.ExactArgs(0),
		PreRunE: validateRunCompletionFlags,
		Run:     runCompletion,
	}

	cmd.Flags().AddFlagSet(installCompletionFlags)
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default $HOME/.fat-cli.yaml)")
	// API Flags
	flags.AddFlagSet(apiFlags)
	// Chain ID Flags
	flags.VarP(paramsToken.ChainID, "chainid", "c",
		"Chain ID of a FAT chain")
	flags.Lookup("chainid").DefValue = "none"
	flags.StringVarP(&paramsToken.TokenID, "tokenid", "t", "",
		"Token ID of a FAT chain")
	flags.VarP(paramsToken.IssuerChainID, "identity", "i",
		"Issuer Identity Chain ID of a FAT chain")
	flags.Lookup("identity").DefValue = "none"
	flags.BoolVar(&paramsToken.IncludePending, "pending", false,
		"Include pending entries in fatd's results")

	generateCmplFlags(cmd, rootCmplCmd.Flags)
	return cmd
}()

var rootCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, tokenCmplFlags),
	Sub:   complete.Commands{"help": complete.Command{Sub: complete.Commands{}}},
}
var apiCmplFlags = complete.Flags{
	"--help": complete.PredictNothing,
}
var tokenCmplFlags = complete.Flags{
	"--chainid": PredictChainIDs,
	"-c":        PredictChainIDs,
}

// validateRunCompletionFlags rejects --install and --uninstall when they are
// combined with each other or with any other flag.
func validateRunCompletionFlags(cmd *cobra.Command, _ []string) error {
	var names []string
	cmd.Flags().Visit(func(flg *flag.Flag) {
		names = append(names, "--"+flg.Name)
	})
	if installCompletion || uninstallCompletion {
		if len(names) > 1 {
			return fmt.Errorf("%v may not be used with any other flags",
				strings.Join(names, " "))
		}
	}
	return nil
}

func runCompletion(cmd *cobra.Command, _ []string) {
	// With no completion to perform or install, just print help.
	if !Complete() {
		cmd.Help()
	}
}

// validateChainIDFlags ensures that the token chain is given by --chainid or
// by --tokenid and --identity, and sets paramsToken to query by chain ID.
func validateChainIDFlags(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("chainid") {
		if flags.Changed("tokenid") || flags.Changed("identity") {
			return fmt.Errorf(
				"--chainid may not be used with --tokenid or --identity")
		}
	} else {
		if !flags.Changed("tokenid") || !flags.Changed("identity") {
			if flags.Changed("tokenid") || flags.Changed("identity") {
				return fmt.Errorf(
					"--tokenid and --identity must be used together")
			}
			return fmt.Errorf(
				"either --chainid or --tokenid and --identity must be specified")
		}
		if !fat.ValidIdentityChainID(paramsToken.IssuerChainID[:]) {
			return fmt.Errorf("--identity must begin with %v",
				fat.IssuerIDPrefix)
		}
		byName := api.ParamsToken{TokenID: paramsToken.TokenID,
			IssuerChainID: paramsToken.IssuerChainID}
		*paramsToken.ChainID = byName.ValidChainID()
	}
	return nil
}

// chainParams returns the ParamsToken for the chain selected by the chain ID
// flags, which must have been validated.
func chainParams() api.ParamsToken {
	return api.ParamsToken{ChainID: paramsToken.ChainID,
		IncludePending: paramsToken.IncludePending}
}

// initConfig applies settings from the config file and FAT_* environment
// variables to any global flag not set on the command line.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Fatal(err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".fat-cli")
	}
	viper.SetEnvPrefix("FAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %v", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Fatal(err)
	}

	if err := applyConfig(rootCmd.PersistentFlags(), viper.GetViper()); err != nil {
		log.Fatal(err)
	}
}

func applyConfig(flags *flag.FlagSet, v *viper.Viper) error {
	var err error
	flags.VisitAll(func(flg *flag.Flag) {
		if err != nil || flg.Changed || flg.Name == "config" {
			return
		}
		if !v.IsSet(flg.Name) {
			return
		}
		if sErr := flags.Set(flg.Name, v.GetString(flg.Name)); sErr != nil {
			err = fmt.Errorf("config %v: %w", flg.Name, sErr)
		}
	})
	return err
}
