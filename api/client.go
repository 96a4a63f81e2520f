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

// Package api is a client for the JSON-RPC 2.0 API of fatd, the FAT daemon.
//
// Every token scoped method takes ParamsToken, or params embedding it, which
// are validated before any request is made. Errors returned by fatd are
// returned as jsonrpc2.Error.
package api

import (
	"fmt"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/Factom-Asset-Tokens/fatgo/fat"
	"github.com/Factom-Asset-Tokens/fatgo/fat/fat1"
	"github.com/Factom-Asset-Tokens/fatgo/fat/jsonlen"
)

const APIVersion = "1"

// FatdDefault is the default fatd endpoint.
const FatdDefault = "http://localhost:8078"

// Client makes RPC requests to fatd's API. Client embeds a jsonrpc2.Client,
// and thus also an http.Client.
type Client struct {
	FatdServer string
	jrpc.Client
}

// NewClient returns a pointer to a Client initialized with the default
// localhost endpoint for fatd and a 15 second timeout.
func NewClient() *Client {
	c := &Client{FatdServer: FatdDefault}
	c.Timeout = 15 * time.Second
	return c
}

// Request makes a request to fatd's v1 API. If params implements Params it is
// validated first.
func (c *Client) Request(method string, params, result interface{}) error {
	if p, ok := params.(Params); ok {
		if err := p.IsValid(); err != nil {
			return err
		}
	}
	url := c.FatdServer + "/v" + APIVersion
	if c.DebugRequest {
		fmt.Println("fatd:", url)
	}
	return c.Client.Request(url, method, params, result)
}

func (c *Client) GetIssuance(params ParamsToken) (ResultGetIssuance, error) {
	var res ResultGetIssuance
	err := c.Request("get-issuance", params, &res)
	return res, err
}

func (c *Client) GetTransaction(params ParamsGetTransaction) (
	ResultGetTransaction, error) {
	var res ResultGetTransaction
	err := c.Request("get-transaction", params, &res)
	return res, err
}

func (c *Client) GetTransactions(params ParamsGetTransactions) (
	[]ResultGetTransaction, error) {
	var res []ResultGetTransaction
	err := c.Request("get-transactions", &params, &res)
	return res, err
}

// GetBalance returns the balance of the address in params. For FAT-1 tokens
// this is the number of NFTokenIDs it owns.
func (c *Client) GetBalance(params ParamsGetBalance) (uint64, error) {
	var balance uint64
	err := c.Request("get-balance", params, &balance)
	return balance, err
}

// GetBalances returns the non-zero balances of an address across all tokens
// tracked by fatd.
func (c *Client) GetBalances(params ParamsGetBalances) (ResultGetBalances, error) {
	var res ResultGetBalances
	err := c.Request("get-balances", params, &res)
	return res, err
}

// GetNFBalance returns the NFTokenIDs owned by the address in params, which
// may be empty.
func (c *Client) GetNFBalance(params ParamsGetNFBalance) (fat1.NFTokens, error) {
	var res fat1.NFTokenAmount
	if err := c.Request("get-nf-balance", &params, &rawNFTokens{&res}); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return fat1.NFTokens{}, nil
	}
	return res.NFTokens()
}

// rawNFTokens accepts an empty JSON array, which fat1.NFTokenAmount rejects.
type rawNFTokens struct{ *fat1.NFTokenAmount }

func (r rawNFTokens) UnmarshalJSON(data []byte) error {
	if string(jsonlen.Compact(data)) == "[]" {
		*r.NFTokenAmount = nil
		return nil
	}
	return r.NFTokenAmount.UnmarshalJSON(data)
}

func (c *Client) GetStats(params ParamsToken) (ResultGetStats, error) {
	var res ResultGetStats
	err := c.Request("get-stats", params, &res)
	return res, err
}

func (c *Client) GetNFToken(params ParamsGetNFToken) (ResultGetNFToken, error) {
	var res ResultGetNFToken
	err := c.Request("get-nf-token", params, &res)
	return res, err
}

func (c *Client) GetNFTokens(params ParamsGetAllNFTokens) (
	[]ResultGetNFToken, error) {
	var res []ResultGetNFToken
	err := c.Request("get-nf-tokens", &params, &res)
	return res, err
}

func (c *Client) SendTransaction(params ParamsSendTransaction) (
	ResultSendTransaction, error) {
	var res ResultSendTransaction
	err := c.Request("send-transaction", params, &res)
	return res, err
}

// SendSignedRecord sends r to fatd with send-transaction. Unlike
// fat.SignedRecord.Submit, fatd pays for the entry.
func (c *Client) SendSignedRecord(r fat.SignedRecord, dryRun bool) (
	ResultSendTransaction, error) {
	params := NewParamsSendTransaction(r)
	params.DryRun = dryRun
	return c.SendTransaction(params)
}

// GetDaemonTokens returns the chain ID, token ID and issuer chain ID of every
// issued token that fatd tracks.
func (c *Client) GetDaemonTokens() ([]ParamsToken, error) {
	var res []ParamsToken
	err := c.Request("get-daemon-tokens", nil, &res)
	return res, err
}

func (c *Client) GetDaemonProperties() (ResultGetDaemonProperties, error) {
	var res ResultGetDaemonProperties
	err := c.Request("get-daemon-properties", nil, &res)
	return res, err
}

func (c *Client) GetSyncStatus() (ResultGetSyncStatus, error) {
	var res ResultGetSyncStatus
	err := c.Request("get-sync-status", nil, &res)
	return res, err
}
