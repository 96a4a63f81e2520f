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
	"os"
	"strings"
	"time"

	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/posener/complete"
)

// parseAPIFlags parses the API flags from the command line being completed
// so that predictions query the right fatd. Predictions must be fast.
func parseAPIFlags() error {
	args := strings.Fields(os.Getenv("COMP_LINE"))
	if len(args) > 0 {
		args = args[1:]
	}
	if err := apiFlags.Parse(args); err != nil {
		return err
	}
	FATClient.Timeout = time.Second / 3
	return nil
}

// PredictChainIDs predicts the chain IDs of the tokens tracked by fatd,
// omitting those already on the command line.
var PredictChainIDs complete.PredictFunc = func(args complete.Args) []string {
	if err := parseAPIFlags(); err != nil {
		return nil
	}
	chains, err := FATClient.GetDaemonTokens()
	if err != nil {
		return nil
	}
	return predictChainIDs(chains, args.Completed)
}

func predictChainIDs(chains []api.ParamsToken, completedArgs []string) []string {
	completed := make(map[factom.Bytes32]struct{}, len(completedArgs))
	for _, arg := range completedArgs {
		var chainID factom.Bytes32
		if chainID.Set(arg) != nil {
			continue
		}
		completed[chainID] = struct{}{}
	}
	chainStrs := make([]string, 0, len(chains))
	for _, chain := range chains {
		if chain.ChainID == nil {
			continue
		}
		if _, ok := completed[*chain.ChainID]; ok {
			continue
		}
		chainStrs = append(chainStrs, chain.ChainID.String())
	}
	return chainStrs
}

// PredictAppend returns a Predictor that appends suffix to each of the
// predictions of predict.
func PredictAppend(predict complete.Predictor, suffix string) complete.PredictFunc {
	return func(args complete.Args) []string {
		predictions := predict.Predict(args)
		for i := range predictions {
			predictions[i] += suffix
		}
		return predictions
	}
}

var predictCoinbaseColon = PredictAppend(complete.PredictSet("coinbase"), ":")
