package api_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/Factom-Asset-Tokens/fatgo/api"
	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chainIDStr = "145d5207a1ca2978e2a1cb43c97d538cd516d65cd5d14579549664bfecd80296"
	issuerStr  = "888888a37cbf303c0bfc8d0cc7e77885c42000b757bd4d9e659de994477a0904"
	hashStr    = "0cea5fd7e4baa4a2b0d99e2b8e4cbb3d6b0c1b2c05de2e3ecca4fe4e5bd1d1a0"
	fa1Str     = "FA2gCmih3PaSYRVMt1jLkdG4Xpo2koebUpQ6FpRRnqw5FfTSN2vW"
	fa2Str     = "FA3j68XNwKwvHXV2TKndxPpyCK3KrWTDyyfxzi8LwuM5XRuEmhy6"
)

var newParamsTokenTests = []struct {
	Name     string
	ChainID  string
	TokenID  string
	IssuerID string
	Err      error
	Expected string
}{{
	Name:     "chain id",
	ChainID:  chainIDStr,
	Expected: `{"chainid":"` + chainIDStr + `"}`,
}, {
	Name:     "chain id wins",
	ChainID:  chainIDStr,
	TokenID:  "test",
	Expected: `{"chainid":"` + chainIDStr + `"}`,
}, {
	Name:     "token id and issuer id",
	TokenID:  "test",
	IssuerID: issuerStr,
	Expected: `{"tokenid":"test","issuerid":"` + issuerStr + `"}`,
}, {
	Name:    "token id only",
	TokenID: "test",
	Err:     fat.ErrMissingRequiredParameter,
}, {
	Name:     "issuer id only",
	IssuerID: issuerStr,
	Err:      fat.ErrMissingRequiredParameter,
}, {
	Name: "none",
	Err:  fat.ErrMissingRequiredParameter,
}, {
	Name:    "invalid chain id",
	ChainID: "145d",
	Err:     fat.ErrInvalidChainID,
}, {
	Name:     "invalid issuer id",
	TokenID:  "test",
	IssuerID: chainIDStr,
	Err:      fat.ErrInvalidParameter,
}}

func TestNewParamsToken(t *testing.T) {
	for _, test := range newParamsTokenTests {
		t.Run(test.Name, func(t *testing.T) {
			params, err := api.NewParamsToken(
				test.ChainID, test.TokenID, test.IssuerID)
			if test.Err != nil {
				assert.True(t, errors.Is(err, test.Err), "%v", err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, params.IsValid())
			data, err := json.Marshal(params)
			require.NoError(t, err)
			assert.JSONEq(t, test.Expected, string(data))
			assert.Equal(t, chainIDStr, params.ValidChainID().String())
		})
	}
}

func TestParamsTokenIsValid(t *testing.T) {
	chainID := factom.NewBytes32FromString(chainIDStr)
	issuerID := factom.NewBytes32FromString(issuerStr)
	tests := []struct {
		Name   string
		Params api.ParamsToken
		Err    error
	}{
		{"chain id", api.ParamsToken{ChainID: chainID}, nil},
		{"token and issuer", api.ParamsToken{TokenID: "test",
			IssuerChainID: issuerID}, nil},
		{"chain id and token id", api.ParamsToken{ChainID: chainID,
			TokenID: "test"}, fat.ErrMissingRequiredParameter},
		{"chain id and issuer", api.ParamsToken{ChainID: chainID,
			IssuerChainID: issuerID}, fat.ErrMissingRequiredParameter},
		{"all three", api.ParamsToken{ChainID: chainID, TokenID: "test",
			IssuerChainID: issuerID}, fat.ErrMissingRequiredParameter},
		{"missing issuer", api.ParamsToken{TokenID: "test"},
			fat.ErrMissingRequiredParameter},
		{"empty", api.ParamsToken{}, fat.ErrMissingRequiredParameter},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			err := test.Params.IsValid()
			if test.Err == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, test.Err), "%v", err)
		})
	}
}

func TestParamsIsValid(t *testing.T) {
	token := api.ParamsToken{ChainID: factom.NewBytes32FromString(chainIDStr)}
	adr, _ := factom.NewFAAddress(fa1Str)
	zero := uint64(0)
	tests := []struct {
		Name   string
		Params api.Params
		Err    error
	}{
		{"get-transaction no hash", api.ParamsGetTransaction{
			ParamsToken: token}, fat.ErrMissingRequiredParameter},
		{"get-transactions bad order", &api.ParamsGetTransactions{
			ParamsToken:      token,
			ParamsPagination: api.ParamsPagination{Order: "up"}},
			fat.ErrInvalidParameter},
		{"get-transactions zero page", &api.ParamsGetTransactions{
			ParamsToken:      token,
			ParamsPagination: api.ParamsPagination{Page: &zero}},
			fat.ErrInvalidParameter},
		{"get-transactions tofrom without addresses",
			&api.ParamsGetTransactions{ParamsToken: token, ToFrom: "TO"},
			fat.ErrMissingRequiredParameter},
		{"get-transactions bad tofrom", &api.ParamsGetTransactions{
			ParamsToken: token, ToFrom: "sideways",
			Addresses: []factom.FAAddress{adr}},
			fat.ErrInvalidParameter},
		{"get-transactions", &api.ParamsGetTransactions{
			ParamsToken: token, ToFrom: "from",
			Addresses: []factom.FAAddress{adr},
			ParamsPagination: api.ParamsPagination{Order: "DESC"}},
			nil},
		{"get-balance no address", api.ParamsGetBalance{
			ParamsToken: token}, fat.ErrMissingRequiredParameter},
		{"get-balances no address", api.ParamsGetBalances{},
			fat.ErrMissingRequiredParameter},
		{"get-nf-balance no token", &api.ParamsGetNFBalance{
			Address: &adr}, fat.ErrMissingRequiredParameter},
		{"get-nf-token no id", api.ParamsGetNFToken{
			ParamsToken: token}, fat.ErrMissingRequiredParameter},
		{"send-transaction no content", api.ParamsSendTransaction{
			ParamsToken: token}, fat.ErrMissingRequiredParameter},
		{"send-transaction raw and token", api.ParamsSendTransaction{
			ParamsToken: token, Raw: factom.Bytes{0x00}},
			fat.ErrInvalidParameter},
		{"send-transaction bad raw", api.ParamsSendTransaction{
			Raw: factom.Bytes{0x00}}, fat.ErrInvalidParameter},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			err := test.Params.IsValid()
			if test.Err == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, test.Err), "%v", err)
		})
	}
}

// fatd is a fake fatd that records the params of each request by method and
// replies with a canned result.
type fatd struct {
	*httptest.Server
	params map[string]json.RawMessage
}

func newFatd(results map[string]string) *fatd {
	f := &fatd{params: make(map[string]json.RawMessage)}
	methods := make(jrpc.MethodMap, len(results))
	for method, result := range results {
		method, result := method, result
		methods[method] = func(params json.RawMessage) interface{} {
			f.params[method] = params
			return json.RawMessage(result)
		}
	}
	f.Server = httptest.NewServer(jrpc.HTTPRequestHandler(methods))
	return f
}

func (f *fatd) client() *api.Client {
	c := api.NewClient()
	c.FatdServer = f.URL
	return c
}

func TestClientGetIssuance(t *testing.T) {
	srv := newFatd(map[string]string{"get-issuance": `{
		"chainid":"` + chainIDStr + `",
		"tokenid":"test",
		"issuerid":"` + issuerStr + `",
		"entryhash":"` + hashStr + `",
		"timestamp":1557643031,
		"issuance":{"type":"FAT-0","supply":-1,"symbol":"test"}}`})
	defer srv.Close()

	params, err := api.NewParamsToken("", "test", issuerStr)
	require.NoError(t, err)
	res, err := srv.client().GetIssuance(params)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.JSONEq(`{"tokenid":"test","issuerid":"`+issuerStr+`"}`,
		string(srv.params["get-issuance"]))
	assert.Equal(chainIDStr, res.ChainID.String())
	assert.Equal(hashStr, res.Hash.String())
	assert.Equal(int64(1557643031), res.Timestamp)
	assert.Equal(fat.TypeFAT0, res.Issuance.Type)
	assert.Equal(int64(-1), res.Issuance.Supply)
	assert.Equal("test", res.Issuance.Symbol)
}

func TestClientGetTransaction(t *testing.T) {
	tx := `{"inputs":{"` + fa1Str + `":150},"outputs":{"` + fa2Str +
		`":150},"metadata":{"memo":"rent"}}`
	srv := newFatd(map[string]string{
		"get-transaction": `{"entryhash":"` + hashStr +
			`","timestamp":1571166720,"data":` + tx + `}`,
		"get-transactions": `[{"entryhash":"` + hashStr +
			`","timestamp":1571166720,"data":` + tx + `,"pending":true}]`,
	})
	defer srv.Close()
	c := srv.client()
	token := api.ParamsToken{ChainID: factom.NewBytes32FromString(chainIDStr)}

	res, err := c.GetTransaction(api.ParamsGetTransaction{ParamsToken: token,
		Hash: factom.NewBytes32FromString(hashStr)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"chainid":"`+chainIDStr+`","entryhash":"`+hashStr+`"}`,
		string(srv.params["get-transaction"]))

	fat0Tx, err := res.FAT0()
	require.NoError(t, err)
	assert.Equal(t, fa1Str, fat0Tx.Inputs[0].Address.String())
	assert.Equal(t, uint64(150), fat0Tx.Outputs[0].Amount)
	assert.JSONEq(t, `{"memo":"rent"}`, string(fat0Tx.Metadata()))

	_, err = res.FAT1()
	assert.Error(t, err)

	page := uint64(2)
	adr, _ := factom.NewFAAddress(fa1Str)
	txs, err := c.GetTransactions(api.ParamsGetTransactions{
		ParamsToken: token,
		ParamsPagination: api.ParamsPagination{
			Page: &page, Limit: 1, Order: "Desc"},
		Addresses: []factom.FAAddress{adr},
		ToFrom:    "To",
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Pending)
	assert.JSONEq(t, `{"chainid":"`+chainIDStr+`","page":2,"limit":1,
		"order":"desc","addresses":["`+fa1Str+`"],"tofrom":"to"}`,
		string(srv.params["get-transactions"]))
}

func TestClientBalances(t *testing.T) {
	srv := newFatd(map[string]string{
		"get-balance":    `150`,
		"get-balances":   `{"` + chainIDStr + `":150}`,
		"get-nf-balance": `[1,{"min":3,"max":5}]`,
	})
	defer srv.Close()
	c := srv.client()
	token := api.ParamsToken{ChainID: factom.NewBytes32FromString(chainIDStr)}
	adr, _ := factom.NewFAAddress(fa1Str)

	balance, err := c.GetBalance(api.ParamsGetBalance{
		ParamsToken: token, Address: &adr})
	require.NoError(t, err)
	assert.Equal(t, uint64(150), balance)

	balances, err := c.GetBalances(api.ParamsGetBalances{Address: &adr})
	require.NoError(t, err)
	assert.Equal(t, api.ResultGetBalances{
		*factom.NewBytes32FromString(chainIDStr): 150}, balances)
	data, err := json.Marshal(balances)
	require.NoError(t, err)
	assert.JSONEq(t, `{"`+chainIDStr+`":150}`, string(data))

	tkns, err := c.GetNFBalance(api.ParamsGetNFBalance{
		ParamsToken: token, Address: &adr})
	require.NoError(t, err)
	assert.Equal(t, []fat1.NFTokenID{1, 3, 4, 5}, tkns.Slice())
}

func TestClientGetNFBalanceEmpty(t *testing.T) {
	srv := newFatd(map[string]string{"get-nf-balance": `[]`})
	defer srv.Close()
	adr, _ := factom.NewFAAddress(fa1Str)

	tkns, err := srv.client().GetNFBalance(api.ParamsGetNFBalance{
		ParamsToken: api.ParamsToken{
			ChainID: factom.NewBytes32FromString(chainIDStr)},
		Address: &adr})
	require.NoError(t, err)
	assert.Len(t, tkns, 0)
}

func TestClientNFTokens(t *testing.T) {
	nfToken := `{"id":12,"owner":"` + fa2Str +
		`","metadata":{"art":"cat"},"creationtx":"` + hashStr + `"}`
	srv := newFatd(map[string]string{
		"get-nf-token":  nfToken,
		"get-nf-tokens": `[` + nfToken + `,{"id":13,"burned":true,"creationtx":"` + hashStr + `"}]`,
	})
	defer srv.Close()
	c := srv.client()
	token := api.ParamsToken{ChainID: factom.NewBytes32FromString(chainIDStr)}

	id := fat1.NFTokenID(12)
	res, err := c.GetNFToken(api.ParamsGetNFToken{ParamsToken: token,
		NFTokenID: &id})
	require.NoError(t, err)
	assert.Equal(t, id, res.NFTokenID)
	assert.Equal(t, fa2Str, res.Owner.String())
	assert.JSONEq(t, `{"art":"cat"}`, string(res.Metadata))
	assert.JSONEq(t, `{"chainid":"`+chainIDStr+`","nftokenid":12}`,
		string(srv.params["get-nf-token"]))

	all, err := c.GetNFTokens(api.ParamsGetAllNFTokens{ParamsToken: token})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[1].Burned)
	assert.Nil(t, all[1].Owner)
}

func TestClientGetStats(t *testing.T) {
	srv := newFatd(map[string]string{"get-stats": `{
		"chainid":"` + chainIDStr + `",
		"issuance":{"type":"FAT-1","supply":100},
		"circulating":10,"burned":1,"transactions":3,
		"issuancets":1557643031,"lasttxts":1571166720,
		"nonzerobalances":2}`})
	defer srv.Close()

	res, err := srv.client().GetStats(api.ParamsToken{
		ChainID: factom.NewBytes32FromString(chainIDStr)})
	require.NoError(t, err)
	require.NotNil(t, res.Issuance)
	assert.Equal(t, fat.TypeFAT1, res.Issuance.Type)
	assert.Equal(t, uint64(10), res.CirculatingSupply)
	assert.Equal(t, uint64(1), res.Burned)
	assert.Equal(t, int64(3), res.Transactions)
	assert.Equal(t, int64(1571166720), res.LastTransactionTimestamp)
	assert.Equal(t, int64(2), res.NonZeroBalances)
}

func TestClientSendSignedRecord(t *testing.T) {
	srv := newFatd(map[string]string{"send-transaction": `{
		"chainid":"` + chainIDStr + `","entryhash":"` + hashStr + `"}`})
	defer srv.Close()

	r := fat.SignedRecord{
		ChainID: *factom.NewBytes32FromString(chainIDStr),
		ExtIDs:  []factom.Bytes{factom.Bytes("1571166720")},
		Content: factom.Bytes(`{}`),
	}
	res, err := srv.client().SendSignedRecord(r, true)
	require.NoError(t, err)
	assert.Equal(t, hashStr, res.Hash.String())
	assert.Nil(t, res.TxID)
	assert.JSONEq(t, `{"chainid":"`+chainIDStr+`",
		"extids":["31353731313636373230"],"content":"7b7d","dryrun":true}`,
		string(srv.params["send-transaction"]))
}

func TestClientDaemon(t *testing.T) {
	srv := newFatd(map[string]string{
		"get-daemon-tokens": `[{"chainid":"` + chainIDStr +
			`","tokenid":"test","issuerid":"` + issuerStr + `"}]`,
		"get-daemon-properties": `{"fatdversion":"v1.0.0","apiversion":"1",
			"factomnetworkid":"mainnet"}`,
		"get-sync-status": `{"syncheight":210000,"factomheight":210001}`,
	})
	defer srv.Close()
	c := srv.client()

	tokens, err := c.GetDaemonTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "test", tokens[0].TokenID)
	assert.Equal(t, issuerStr, tokens[0].IssuerChainID.String())

	props, err := c.GetDaemonProperties()
	require.NoError(t, err)
	assert.Equal(t, api.ResultGetDaemonProperties{FatdVersion: "v1.0.0",
		APIVersion: "1", NetworkID: "mainnet"}, props)

	status, err := c.GetSyncStatus()
	require.NoError(t, err)
	assert.Equal(t, uint32(210000), status.Sync)
	assert.Equal(t, uint32(210001), status.Current)
}

func TestClientInvalidParamsNotSent(t *testing.T) {
	srv := newFatd(map[string]string{"get-issuance": `{}`})
	defer srv.Close()

	_, err := srv.client().GetIssuance(api.ParamsToken{TokenID: "test"})
	assert.True(t, errors.Is(err, fat.ErrMissingRequiredParameter), "%v", err)
	assert.NotContains(t, srv.params, "get-issuance")
}

func TestClientError(t *testing.T) {
	srv := httptest.NewServer(jrpc.HTTPRequestHandler(jrpc.MethodMap{
		"get-stats": func(json.RawMessage) interface{} {
			return &jrpc.Error{Code: -32800, Message: "Token Not Found",
				Data: "token may be invalid, or not yet issued or tracked"}
		},
	}))
	defer srv.Close()

	c := api.NewClient()
	c.FatdServer = srv.URL
	_, err := c.GetStats(api.ParamsToken{
		ChainID: factom.NewBytes32FromString(chainIDStr)})
	require.Error(t, err)
	jErr, ok := err.(jrpc.Error)
	require.True(t, ok, "%T", err)
	assert.EqualValues(t, -32800, jErr.Code)
	assert.Equal(t, "Token Not Found", jErr.Message)
	assert.Equal(t, "token may be invalid, or not yet issued or tracked",
		jErr.Data)
}
