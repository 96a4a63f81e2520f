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

	"github.com/posener/complete"
	"github.com/posener/complete/cmd/install"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

var installCompletion, uninstallCompletion bool

var installCompletionFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.BoolVar(&installCompletion, "install", false,
		"Install shell completion for fat-cli")
	flags.BoolVar(&uninstallCompletion, "uninstall", false,
		"Uninstall shell completion for fat-cli")
	return flags
}()

// Complete installs or uninstalls shell completion if requested, or runs the
// completion program if invoked by the shell. It returns true if it did
// either.
func Complete() bool {
	var err error
	switch {
	case installCompletion:
		err = install.Install("fat-cli")
	case uninstallCompletion:
		err = install.Uninstall("fat-cli")
	default:
		comp := complete.New("fat-cli", rootCmplCmd)
		return comp.Complete()
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Done.")
	return true
}

// generateCmplFlags adds a predictor to cmplFlags for every flag of cmd that
// does not have one yet. Bool flags take no argument.
func generateCmplFlags(cmd *cobra.Command, cmplFlags complete.Flags) {
	// Flags() only includes the persistent flags of parents after
	// LocalFlags() has been called.
	cmd.LocalFlags()
	cmd.Flags().VisitAll(func(flg *flag.Flag) {
		var predict complete.Predictor = complete.PredictAnything
		if flg.Value.Type() == "bool" {
			predict = complete.PredictNothing
		}
		names := []string{"--" + flg.Name}
		if len(flg.Shorthand) > 0 {
			names = append(names, "-"+flg.Shorthand)
		}
		for _, name := range names {
			if _, ok := cmplFlags[name]; !ok {
				cmplFlags[name] = predict
			}
		}
	})
}

func mergeFlags(sets ...complete.Flags) complete.Flags {
	merged := complete.Flags{}
	for _, set := range sets {
		for name, predict := range set {
			merged[name] = predict
		}
	}
	return merged
}
