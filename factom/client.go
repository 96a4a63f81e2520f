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

package factom

import (
	"encoding/json"
	"fmt"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
)

// Client makes RPC requests to factomd's API. Client embeds a jsonrpc2.Client,
// and thus also an http.Client. Use jsonrpc2.Client's BasicAuth settings to
// set up BasicAuth and http.Client's transport settings to configure TLS.
type Client struct {
	Factomd       jrpc.Client
	FactomdServer string
}

// FactomdDefault is the default factomd endpoint.
const FactomdDefault = "http://localhost:8088"

// NewClient returns a pointer to a Client initialized with the default
// localhost endpoint for factomd and a 20 second timeout.
func NewClient() *Client {
	c := &Client{FactomdServer: FactomdDefault}
	c.Factomd.Timeout = 20 * time.Second
	return c
}

// FactomdRequest makes a request to factomd's v2 API.
func (c *Client) FactomdRequest(method string, params, result interface{}) error {
	url := c.FactomdServer + "/v2"
	if c.Factomd.DebugRequest {
		fmt.Println("factomd:", url)
	}
	return c.Factomd.Request(url, method, params, result)
}

type paramsMessage struct {
	Message Bytes `json:"message"`
}

type paramsEntry struct {
	Entry Bytes `json:"entry"`
}

// CommitChain submits a commit-chain message. The factomd result is returned
// unmodified.
func (c *Client) CommitChain(commit []byte) (json.RawMessage, error) {
	return c.rawRequest("commit-chain", paramsMessage{commit})
}

// RevealChain submits the marshaled first Entry of a new chain.
func (c *Client) RevealChain(reveal []byte) (json.RawMessage, error) {
	return c.rawRequest("reveal-chain", paramsEntry{reveal})
}

// CommitEntry submits a commit-entry message.
func (c *Client) CommitEntry(commit []byte) (json.RawMessage, error) {
	return c.rawRequest("commit-entry", paramsMessage{commit})
}

// RevealEntry submits a marshaled Entry to an existing chain.
func (c *Client) RevealEntry(reveal []byte) (json.RawMessage, error) {
	return c.rawRequest("reveal-entry", paramsEntry{reveal})
}

func (c *Client) rawRequest(method string, params interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.FactomdRequest(method, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}
