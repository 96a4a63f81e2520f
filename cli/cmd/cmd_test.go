package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat0"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chainIDStr = "145d5207a1ca2978e2a1cb43c97d538cd516d65cd5d14579549664bfecd80296"
	issuerStr  = "888888a37cbf303c0bfc8d0cc7e77885c42000b757bd4d9e659de994477a0904"
	fs1Str     = "Fs1fR4dMNdyp1a6qYfkLFPJZUyRg1uFW3b6NEK9VaRELD4qALstq"
	fa1Str     = "FA2gCmih3PaSYRVMt1jLkdG4Xpo2koebUpQ6FpRRnqw5FfTSN2vW"
	fs2Str     = "Fs2jSmXgaysrqiADPmAvvb71NfAa9MqvXvRemozTE8LRc64hLqtf"
	fa2Str     = "FA3j68XNwKwvHXV2TKndxPpyCK3KrWTDyyfxzi8LwuM5XRuEmhy6"
	fa3Str     = "FA3rsxWx4WSN5Egj2ZxPoju1mzwfjBivTDMcEvoC1JSsqkddZPCB"
)

func mustFA(t *testing.T, adrStr string) factom.FAAddress {
	adr, err := factom.NewFAAddress(adrStr)
	require.NoError(t, err)
	return adr
}

// resetTxFlags clears the state shared by the --input flags.
func resetTxFlags() func() {
	prevSigners, prevValues := signers, addressValueStrMap
	signers = nil
	addressValueStrMap = map[factom.FAAddress]string{}
	return func() { signers, addressValueStrMap = prevSigners, prevValues }
}

// useFatd points FATClient at a fake fatd serving methods.
func useFatd(methods jrpc.MethodMap) func() {
	srv := httptest.NewServer(jrpc.HTTPRequestHandler(methods))
	prev := FATClient.FatdServer
	FATClient.FatdServer = srv.URL
	return func() {
		FATClient.FatdServer = prev
		srv.Close()
	}
}

var parsePositiveIntTests = []struct {
	Str      string
	Expected uint64
	Err      string
}{
	{Str: "150", Expected: 150},
	{Str: "18446744073709551615", Expected: 18446744073709551615},
	{Str: "", Err: "empty"},
	{Str: "0", Err: "zero"},
	{Str: "-5", Err: "negative"},
	{Str: "1.5", Err: "invalid syntax"},
	{Str: "18446744073709551616", Err: "out of range"},
}

func TestParsePositiveInt(t *testing.T) {
	for _, test := range parsePositiveIntTests {
		t.Run(test.Str, func(t *testing.T) {
			amount, err := parsePositiveInt(test.Str)
			if len(test.Err) > 0 {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.Err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.Expected, amount)
		})
	}
}

var parseNFTokenAmountTests = []struct {
	Str      string
	Expected string
	Len      int
}{
	{Str: "[10]", Expected: `[10]`, Len: 1},
	{Str: "[0]", Expected: `[0]`, Len: 1},
	{Str: "[1,2,5-100]", Expected: `[1,2,{"min":5,"max":100}]`, Len: 98},
	{Str: "[7,3]", Expected: `[7,3]`, Len: 2},
	{Str: "[4-4]", Expected: `[{"min":4,"max":4}]`, Len: 1},
	{Str: "10"},
	{Str: "[]"},
	{Str: "[1,]"},
	{Str: "[a]"},
	{Str: "[-1]"},
	{Str: "[5-2]"},
	{Str: "[1-2-3]"},
	{Str: "[1,1]"},
	{Str: "[1,0-2]"},
}

func TestParseNFTokenAmount(t *testing.T) {
	for _, test := range parseNFTokenAmountTests {
		t.Run(test.Str, func(t *testing.T) {
			amount, err := parseNFTokenAmount(test.Str)
			if len(test.Expected) == 0 {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.Len, amount.Len())
			data, err := json.Marshal(amount)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, string(data))
		})
	}
}

func TestParseFlagAddress(t *testing.T) {
	assert := assert.New(t)
	fa1 := mustFA(t, fa1Str)

	for _, keyword := range []string{"coinbase", "burn"} {
		adr, _, err := parseFlagAddress(keyword, false)
		assert.NoError(err)
		assert.Equal(fat.Coinbase(), adr)

		_, _, err = parseFlagAddress(keyword, true)
		assert.Error(err)
	}

	adr, fs, err := parseFlagAddress(fs1Str, true)
	assert.NoError(err)
	assert.Equal(fa1, adr)
	assert.Equal(fs1Str, fs.String())

	adr, _, err = parseFlagAddress(fs1Str, false)
	assert.NoError(err)
	assert.Equal(fa1, adr)

	adr, _, err = parseFlagAddress(fa1Str, false)
	assert.NoError(err)
	assert.Equal(fa1, adr)

	_, _, err = parseFlagAddress(fa1Str, true)
	assert.Error(err, "an FA address cannot sign an input")

	_, _, err = parseFlagAddress("FA2gCmih3PaSYRVMt1jLkdG4Xpo2koebUp", false)
	assert.Error(err)
}

func TestAddressAmountFlag(t *testing.T) {
	defer resetTxFlags()()
	assert := assert.New(t)

	var inputs fat0.AddressAmountMap
	in := &addressAmountFlag{m: &inputs, input: true}
	require.NoError(t, in.Set(fs2Str+":50"))
	require.NoError(t, in.Set(fs1Str+":100"))
	assert.EqualError(in.Set(fs2Str+":1"), "duplicate address: "+fa2Str)
	assert.Error(in.Set(fs2Str))
	assert.Error(in.Set(fs2Str+":0"))

	assert.Equal(`{"`+fa2Str+`":50,"`+fa1Str+`":100}`, in.String())
	require.Len(t, signers, 2)
	assert.Equal(fa2Str, signers[0].FAAddress().String())
	assert.Equal(fa1Str, signers[1].FAAddress().String())
	assert.Equal("100", addressValueStrMap[mustFA(t, fa1Str)])

	var outputs fat0.AddressAmountMap
	out := &addressAmountFlag{m: &outputs}
	require.NoError(t, out.Set(fa3Str+":150"))
	require.NoError(t, out.Set("burn:1"))
	assert.Len(signers, 2, "outputs do not add signers")
	amount, ok := outputs.Get(fat.Coinbase())
	assert.True(ok)
	assert.Equal(uint64(1), amount)
}

func TestAddressNFTokensFlag(t *testing.T) {
	defer resetTxFlags()()
	assert := assert.New(t)

	var inputs fat1.AddressNFTokensMap
	in := &addressNFTokensFlag{m: &inputs, input: true}
	require.NoError(t, in.Set(fs1Str+":[1,2,5-100]"))
	assert.Error(in.Set(fs1Str+":[3]"), "duplicate address")
	assert.Error(in.Set(fs2Str+":[2,2]"))
	assert.Error(in.Set(fs2Str+":3"))

	assert.Equal(`{"`+fa1Str+`":[1,2,{"min":5,"max":100}]}`, in.String())
	require.Len(t, signers, 1)
	assert.Equal(fa1Str, signers[0].FAAddress().String())
	assert.Equal("[1,2,5-100]", addressValueStrMap[mustFA(t, fa1Str)])
}

func TestSetFAT0Coinbase(t *testing.T) {
	assert := assert.New(t)
	tx := fat0.NewTransaction()
	require.NoError(t, tx.AddOutput(fa1Str, 50))
	require.NoError(t, tx.AddOutput(fa2Str, 100))
	require.NoError(t, setFAT0Coinbase(tx))
	assert.True(tx.IsMint())
	amount, _ := tx.Inputs.Get(fat.Coinbase())
	assert.Equal(uint64(150), amount)

	tx.Outputs.Set(fat.Coinbase(), 1)
	assert.Error(setFAT0Coinbase(tx))
}

func TestSetFAT1Coinbase(t *testing.T) {
	assert := assert.New(t)
	tx := fat1.NewTransaction()
	require.NoError(t, tx.AddOutput(fa1Str, fat1.NFTokenAmount{
		fat1.NFTokenID(1), fat1.NFTokenID(2)}))
	require.NoError(t, tx.AddOutput(fa2Str, fat1.NFTokenAmount{
		fat1.NewNFTokenIDRange(3, 20)}))
	require.NoError(t, setFAT1Coinbase(tx))
	assert.True(tx.IsMint())
	assert.Equal(20, tx.Inputs.NumNFTokenIDs())
	data, err := json.Marshal(tx.Inputs)
	require.NoError(t, err)
	assert.JSONEq(fmt.Sprintf(`{%q:[{"min":1,"max":20}]}`,
		fat.Coinbase().String()), string(data))

	overlap := fat1.NewTransaction()
	require.NoError(t, overlap.AddOutput(fa1Str, fat1.NFTokenAmount{
		fat1.NFTokenID(1)}))
	require.NoError(t, overlap.AddOutput(fa2Str, fat1.NFTokenAmount{
		fat1.NFTokenID(1)}))
	assert.Error(setFAT1Coinbase(overlap))
}

func TestNFTokenMetadataFlag(t *testing.T) {
	assert := assert.New(t)
	var l nfTokenMetadataFlag
	require.NoError(t, l.Set(`[1,5-10]:{"color":"red"}`))
	require.NoError(t, l.Set(`[2]:"a:b"`))
	require.Len(t, l, 2)
	assert.Equal(7, l[0].Tokens.Len())
	assert.Equal(`{"color":"red"}`, string(l[0].Metadata))
	assert.Equal(`"a:b"`, string(l[1].Metadata))

	assert.Error(l.Set(`1:{}`))
	assert.Error(l.Set(`[1]:{`))
	assert.Error(l.Set(`[]:{}`))
	assert.Len(l, 2)
}

func TestApplyTokenMetadata(t *testing.T) {
	prev := nfTokenMetadata
	defer func() { nfTokenMetadata = prev }()
	nfTokenMetadata = nfTokenMetadata[:0:0]
	require.NoError(t, (*nfTokenMetadataFlag)(&nfTokenMetadata).
		Set(`[1-2]:{"a":1}`))

	tx := fat1.NewTransaction()
	require.NoError(t, tx.AddOutput(fa1Str, fat1.NFTokenAmount{
		fat1.NewNFTokenIDRange(1, 2)}))
	require.NoError(t, tx.AddInput(fa2Str, fat1.NFTokenAmount{
		fat1.NewNFTokenIDRange(1, 2)}))
	assert.Error(t, applyTokenMetadata(tx), "not a coinbase transaction")

	require.NoError(t, setFAT1Coinbase(tx))
	require.NoError(t, applyTokenMetadata(tx))
	require.Len(t, tx.TokenMetadata, 1)
	assert.Equal(t, `{"a":1}`, string(tx.TokenMetadata[0].Metadata))
}

func TestTypeFlag(t *testing.T) {
	for _, str := range []string{"fat0", "FAT0", "FAT-0", "fat-0"} {
		var typ Type
		assert.NoError(t, typ.Set(str), str)
		assert.Equal(t, fat.TypeFAT0, fat.Type(typ), str)
	}
	var typ Type
	assert.NoError(t, typ.Set("fat1"))
	assert.Equal(t, "FAT-1", typ.String())
	assert.Error(t, typ.Set("FAT-2"))
	assert.Error(t, typ.Set("fat"))
}

func TestRawMessageFlag(t *testing.T) {
	var r RawMessage
	assert.NoError(t, r.Set(`{"a":[1,2]}`))
	assert.Equal(t, `{"a":[1,2]}`, r.String())
	assert.Error(t, r.Set(`{"a":`))
}

func TestFormatBalances(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("{}", formatBalances(nil))

	var a, b factom.Bytes32
	require.NoError(t, a.Set(chainIDStr))
	b[0] = 0x01
	balances := api.ResultGetBalances{a: 5, b: 10}
	assert.Equal("\n  "+b.String()+": 10\n  "+chainIDStr+": 5",
		formatBalances(balances))
}

func TestFormatStats(t *testing.T) {
	var chainID factom.Bytes32
	require.NoError(t, chainID.Set(chainIDStr))
	stats := api.ResultGetStats{
		ParamsToken:       api.ParamsToken{TokenID: "test"},
		CirculatingSupply: 10,
		Transactions:      2,
	}

	out := formatStats(&chainID, stats)
	assert.True(t, strings.HasPrefix(out, chainIDStr+"\n"))
	assert.Contains(t, out, "Token ID:              \"test\"\n")
	assert.Contains(t, out, "Circulating:           10\n")
	assert.NotContains(t, out, "Max Supply")
	assert.NotContains(t, out, "Last Transaction")

	stats.Issuance = &api.Issuance{Supply: -1, Symbol: "T"}
	stats.LastTransactionTimestamp = 1557643031
	out = formatStats(&chainID, stats)
	assert.Contains(t, out, "Max Supply:            unlimited\n")
	assert.Contains(t, out, "Symbol:                T\n")
	assert.Contains(t, out, "Last Transaction:")
}

func TestPredictChainIDs(t *testing.T) {
	var a, b factom.Bytes32
	require.NoError(t, a.Set(chainIDStr))
	b[31] = 0xff
	chains := []api.ParamsToken{{ChainID: &a}, {TokenID: "no chain"},
		{ChainID: &b}}

	assert.Equal(t, []string{a.String(), b.String()},
		predictChainIDs(chains, nil))
	assert.Equal(t, []string{b.String()},
		predictChainIDs(chains, []string{"balance", chainIDStr}))
}

func TestFetchBalances(t *testing.T) {
	balances := map[string]uint64{fa1Str: 5, fa2Str: 0}
	defer useFatd(jrpc.MethodMap{
		"get-balance": func(data json.RawMessage) interface{} {
			var params api.ParamsGetBalance
			if err := json.Unmarshal(data, &params); err != nil {
				return jrpc.InvalidParams(err.Error())
			}
			balance, ok := balances[params.Address.String()]
			if !ok {
				return jrpc.NewError(-32801, "Invalid Address", nil)
			}
			return balance
		},
	})()

	var chainID factom.Bytes32
	require.NoError(t, chainID.Set(chainIDStr))
	fetch := fetchFAT0Balance(api.ParamsToken{ChainID: &chainID})

	adrs := []factom.FAAddress{mustFA(t, fa2Str), mustFA(t, fa1Str)}
	res, err := fetchBalances(adrs, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "5"}, res)

	adrs = append(adrs, mustFA(t, fa3Str))
	_, err = fetchBalances(adrs, fetch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fa3Str)
	var rpcErr jrpc.Error
	require.True(t, errors.As(err, &rpcErr))
	assert.EqualValues(t, -32801, rpcErr.Code)
}

func TestFetchFAT1Balance(t *testing.T) {
	defer useFatd(jrpc.MethodMap{
		"get-nf-balance": func(data json.RawMessage) interface{} {
			var params api.ParamsGetNFBalance
			if err := json.Unmarshal(data, &params); err != nil {
				return jrpc.InvalidParams(err.Error())
			}
			if params.Address.String() == fa1Str {
				return json.RawMessage(`[1,{"min":3,"max":5}]`)
			}
			return json.RawMessage(`[]`)
		},
	})()

	var chainID factom.Bytes32
	require.NoError(t, chainID.Set(chainIDStr))
	fetch := fetchFAT1Balance(api.ParamsToken{ChainID: &chainID})

	res, err := fetchBalances(
		[]factom.FAAddress{mustFA(t, fa1Str), mustFA(t, fa2Str)}, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{`[1,3,4,5]`, `[]`}, res)
}

func TestCheckNotIssued(t *testing.T) {
	var chainID factom.Bytes32
	require.NoError(t, chainID.Set(chainIDStr))
	params := api.ParamsToken{ChainID: &chainID}

	restore := useFatd(jrpc.MethodMap{
		"get-stats": func(json.RawMessage) interface{} {
			return jrpc.NewError(ErrorCodeTokenNotFound, "Token Not Found",
				"token may not be issued")
		},
	})
	assert.NoError(t, checkNotIssued(params))
	restore()

	restore = useFatd(jrpc.MethodMap{
		"get-stats": func(json.RawMessage) interface{} {
			return json.RawMessage(`{"chainid":"` + chainIDStr + `",
				"issuance":{"type":"FAT-0","supply":-1},
				"circulating":10,"burned":0,"transactions":2,
				"issuancets":1557643031}`)
		},
	})
	assert.Error(t, checkNotIssued(params))
	restore()

	restore = useFatd(jrpc.MethodMap{
		"get-stats": func(json.RawMessage) interface{} {
			return jrpc.NewError(-32603, "Internal error", nil)
		},
	})
	defer restore()
	assert.Error(t, checkNotIssued(params))
}

func TestValidateChainIDFlags(t *testing.T) {
	prev := paramsToken
	defer func() { paramsToken = prev }()

	newCmd := func(args ...string) *cobra.Command {
		paramsToken = api.ParamsToken{ChainID: new(factom.Bytes32),
			IssuerChainID: new(factom.Bytes32)}
		cmd := &cobra.Command{Use: "test"}
		flags := cmd.Flags()
		flags.Var(paramsToken.ChainID, "chainid", "")
		flags.StringVar(&paramsToken.TokenID, "tokenid", "", "")
		flags.Var(paramsToken.IssuerChainID, "identity", "")
		require.NoError(t, flags.Parse(args))
		return cmd
	}

	cmd := newCmd("--tokenid", "test", "--identity", issuerStr)
	require.NoError(t, validateChainIDFlags(cmd, nil))
	assert.Equal(t, chainIDStr, paramsToken.ChainID.String())
	params := chainParams()
	assert.NoError(t, params.IsValid())

	cmd = newCmd("--chainid", chainIDStr)
	require.NoError(t, validateChainIDFlags(cmd, nil))
	assert.Equal(t, chainIDStr, paramsToken.ChainID.String())

	for _, args := range [][]string{
		{},
		{"--tokenid", "test"},
		{"--chainid", chainIDStr, "--tokenid", "test"},
		{"--tokenid", "test", "--identity", chainIDStr},
	} {
		assert.Error(t, validateChainIDFlags(newCmd(args...), nil), "%v", args)
	}
}

func TestApplyConfig(t *testing.T) {
	var fatd, factomd string
	var verbose bool
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.StringVar(&fatd, "fatd", api.FatdDefault, "")
	flags.StringVar(&factomd, "factomd", factom.FactomdDefault, "")
	flags.BoolVar(&verbose, "verbose", false, "")
	flags.Uint64("supply", 0, "")
	require.NoError(t, flags.Parse([]string{"--factomd", "http://cli:8088"}))

	v := viper.New()
	v.Set("fatd", "http://config:8078")
	v.Set("factomd", "http://config:8088")
	v.Set("verbose", true)
	require.NoError(t, applyConfig(flags, v))

	assert := assert.New(t)
	assert.Equal("http://config:8078", fatd)
	assert.Equal("http://cli:8088", factomd, "command line wins")
	assert.True(verbose)

	v.Set("supply", "not a number")
	err := applyConfig(flags, v)
	require.Error(t, err)
	assert.Contains(err.Error(), "config supply")
}
