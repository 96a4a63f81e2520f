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

package fat

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat/jsonlen"
)

// ChainFinalizationWait is the fixed delay between creating the token chain
// and submitting its initialization entry.
const ChainFinalizationWait = 3 * time.Second

var symbolRegexp = regexp.MustCompile(`^[A-Z]{1,4}$`)

// Issuance builds and submits the two entries that issue a new token: the
// first entry of the token chain and the signed initialization entry.
//
// An Issuance is not safe for concurrent use.
type Issuance struct {
	Type Type

	tokenID       string
	issuerID      string
	issuerChainID factom.Bytes32
	supply        int64
	symbol        string
	metadata      json.RawMessage

	es  *factom.EsAddress
	sk1 *factom.SK1Key

	timestamp time.Time
	chainID   *factom.Bytes32
}

// IssuanceOption sets a field of an Issuance in NewIssuance.
type IssuanceOption func(*Issuance) error

// WithTokenID calls SetTokenID.
func WithTokenID(tokenID string) IssuanceOption {
	return func(i *Issuance) error { return i.SetTokenID(tokenID) }
}

// WithIssuerID calls SetIssuerID.
func WithIssuerID(issuerID string) IssuanceOption {
	return func(i *Issuance) error { return i.SetIssuerID(issuerID) }
}

// WithSupply calls SetSupply.
func WithSupply(supply int64) IssuanceOption {
	return func(i *Issuance) error { return i.SetSupply(supply) }
}

// WithSymbol calls SetSymbol.
func WithSymbol(symbol string) IssuanceOption {
	return func(i *Issuance) error { return i.SetSymbol(symbol) }
}

// WithMetadata calls SetMetadata.
func WithMetadata(v interface{}) IssuanceOption {
	return func(i *Issuance) error { return i.SetMetadata(v) }
}

// WithECPrivateKey calls SetECPrivateKey.
func WithECPrivateKey(es factom.EsAddress) IssuanceOption {
	return func(i *Issuance) error { i.SetECPrivateKey(es); return nil }
}

// WithIssuerKey calls SetIssuerKey.
func WithIssuerKey(sk1 factom.SK1Key) IssuanceOption {
	return func(i *Issuance) error { i.SetIssuerKey(sk1); return nil }
}

// NewIssuance returns an Issuance of the given type with its timestamp set
// to the current time, after applying opts in order.
func NewIssuance(typ Type, opts ...IssuanceOption) (*Issuance, error) {
	if !typ.IsValid() {
		return nil, NewError(InvalidParameter, "%v", typ)
	}
	i := &Issuance{Type: typ, timestamp: time.Now()}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	return i, nil
}

func (i *Issuance) SetTokenID(tokenID string) error {
	if !utf8.ValidString(tokenID) {
		return NewError(InvalidParameter, "token id must be valid UTF-8")
	}
	i.tokenID = tokenID
	i.chainID = nil
	return nil
}

func (i Issuance) TokenID() string { return i.tokenID }

// SetIssuerID sets the issuer identity chain ID, which must be 64 hex
// characters beginning with "888888". It is stored verbatim.
func (i *Issuance) SetIssuerID(issuerID string) error {
	issuerChainID, err := ParseIssuerID(issuerID)
	if err != nil {
		return err
	}
	i.issuerID = issuerID
	i.issuerChainID = issuerChainID
	i.chainID = nil
	return nil
}

func (i Issuance) IssuerID() string { return i.issuerID }

// SetSupply sets the maximum supply, which must be positive or -1 for an
// unlimited supply.
func (i *Issuance) SetSupply(supply int64) error {
	if supply == 0 || supply < -1 {
		return NewError(InvalidParameter,
			`invalid "supply": must be positive or -1`)
	}
	i.supply = supply
	return nil
}

func (i Issuance) Supply() int64 { return i.supply }

// SetSymbol sets the optional ticker symbol: 1 to 4 letters, compared case
// insensitively. It is stored verbatim.
func (i *Issuance) SetSymbol(symbol string) error {
	if !symbolRegexp.MatchString(strings.ToUpper(symbol)) {
		return NewError(InvalidParameter,
			`invalid "symbol": must be 1-4 characters of the set [A-Z]`)
	}
	i.symbol = symbol
	return nil
}

func (i Issuance) Symbol() string { return i.symbol }

// SetMetadata sets the optional metadata, which must encode to a JSON
// object.
func (i *Issuance) SetMetadata(v interface{}) error {
	metadata, err := marshalMetadata(v)
	if err != nil {
		return err
	}
	if string(metadata) == "null" {
		metadata = nil
	}
	if metadata != nil && metadata[0] != '{' {
		return NewError(InvalidParameter,
			`invalid "metadata": must be a JSON object`)
	}
	i.metadata = metadata
	return nil
}

func (i Issuance) Metadata() json.RawMessage { return i.metadata }

// SetECPrivateKey sets the Entry Credit key that pays for the issuance.
func (i *Issuance) SetECPrivateKey(es factom.EsAddress) {
	i.es = &es
}

// SetECPrivateKeyString parses esStr as an Es address and calls
// SetECPrivateKey.
func (i *Issuance) SetECPrivateKeyString(esStr string) error {
	es, err := factom.NewEsAddress(esStr)
	if err != nil {
		return NewError(InvalidParameter, "EC private key: %v", err)
	}
	i.SetECPrivateKey(es)
	return nil
}

// ECAddress returns the public Entry Credit address derived from the EC
// private key, and false if no key is set.
func (i Issuance) ECAddress() (factom.ECAddress, bool) {
	if i.es == nil {
		return factom.ECAddress{}, false
	}
	return i.es.ECAddress(), true
}

// SetIssuerKey sets the issuer identity key that signs the initialization
// entry.
func (i *Issuance) SetIssuerKey(sk1 factom.SK1Key) {
	i.sk1 = &sk1
}

// SetIssuerKeyString parses sk1Str as an sk1 key and calls SetIssuerKey.
func (i *Issuance) SetIssuerKeyString(sk1Str string) error {
	sk1, err := factom.NewSK1Key(sk1Str)
	if err != nil {
		return NewError(InvalidParameter, "issuer key: %v", err)
	}
	i.SetIssuerKey(sk1)
	return nil
}

// SetTimestamp overrides the timestamp used for the commits and the
// signature salt.
func (i *Issuance) SetTimestamp(ts time.Time) {
	i.timestamp = ts
}

func (i Issuance) Timestamp() time.Time { return i.timestamp }

// IsValid returns true if the token id, issuer id, supply, EC private key and
// issuer key are all set.
func (i Issuance) IsValid() bool {
	return len(i.tokenID) > 0 && len(i.issuerID) > 0 && i.supply != 0 &&
		i.es != nil && i.sk1 != nil
}

// CalculateFee returns the number of Entry Credits paid for an entry with the
// given content and extIDs: one per started KB of their combined length. An
// empty payload costs 0.
func (i Issuance) CalculateFee(content []byte, extIDs []factom.Bytes) int {
	size := len(content)
	for _, extID := range extIDs {
		size += len(extID)
	}
	return (size + 1023) / 1024
}

// CreateChainID computes and records the token chain ID.
func (i *Issuance) CreateChainID() (factom.Bytes32, error) {
	if len(i.tokenID) == 0 || len(i.issuerID) == 0 {
		return factom.Bytes32{}, NewError(MissingRequiredParameter,
			"token id and issuer id are required")
	}
	chainID := ChainID(i.tokenID, i.issuerChainID)
	i.chainID = &chainID
	return chainID, nil
}

// ChainID returns the chain ID computed by CreateChainID, or nil.
func (i Issuance) ChainID() *factom.Bytes32 {
	return i.chainID
}

// CreateChain commits to and reveals the first entry of the token chain,
// paying NewChainCost plus CalculateFee Entry Credits. The extIDs must be the
// token chain's NameIDs.
func (i *Issuance) CreateChain(gw Gateway, content []byte, extIDs []factom.Bytes,
	wait time.Duration) (json.RawMessage, error) {

	chainID, err := i.CreateChainID()
	if err != nil {
		return nil, err
	}
	if !ValidTokenNameIDs(extIDs) ||
		ChainID(string(extIDs[1]), *factom.NewBytes32(extIDs[3])) != chainID {
		return nil, NewError(InvalidParameter,
			"extids are not the name ids of the token chain")
	}
	if i.es == nil {
		return nil, NewError(MissingRequiredParameter, "EC private key")
	}
	cost, err := i.commitCost(content, extIDs, factom.NewChainCost)
	if err != nil {
		return nil, err
	}
	e := factom.Entry{ExtIDs: extIDs, Content: content}
	return commitReveal(gw, *i.es, e, cost, i.timestamp, wait)
}

// InitializeToken commits to and reveals an entry with the given content and
// extIDs in the token chain, paying CalculateFee Entry Credits.
func (i *Issuance) InitializeToken(gw Gateway, content []byte,
	extIDs []factom.Bytes, wait time.Duration) (json.RawMessage, error) {

	chainID, err := i.CreateChainID()
	if err != nil {
		return nil, err
	}
	if i.es == nil {
		return nil, NewError(MissingRequiredParameter, "EC private key")
	}
	cost, err := i.commitCost(content, extIDs, 0)
	if err != nil {
		return nil, err
	}
	e := factom.Entry{ChainID: &chainID, ExtIDs: extIDs, Content: content}
	return commitReveal(gw, *i.es, e, cost, i.timestamp, wait)
}

func (i Issuance) commitCost(content []byte, extIDs []factom.Bytes,
	base int) (uint8, error) {
	cost := base + i.CalculateFee(content, extIDs)
	if cost > factom.NewChainCost+factom.EntryMaxDataSize/1024 {
		return 0, NewError(InvalidParameter,
			"entry cannot be larger than 10KB")
	}
	return uint8(cost), nil
}

// InitContent returns the compact initialization entry content:
//
//	{"type":"FAT-n","supply":S[,"symbol":"..."][,"metadata":{...}]}
func (i Issuance) InitContent() ([]byte, error) {
	content := struct {
		Type     Type            `json:"type"`
		Supply   int64           `json:"supply"`
		Symbol   string          `json:"symbol,omitempty"`
		Metadata json.RawMessage `json:"metadata,omitempty"`
	}{Type: i.Type, Supply: i.supply, Symbol: i.symbol}
	if !IsEmptyMetadata(i.metadata) {
		content.Metadata = i.metadata
	}
	return jsonlen.Marshal(content)
}

// Sign returns the initialization entry signed by the issuer key.
func (i *Issuance) Sign() (SignedRecord, error) {
	if !i.IsValid() {
		return SignedRecord{}, NewError(InvalidTransaction,
			"token id, issuer id, supply, EC key and issuer key are required")
	}
	if i.timestamp.IsZero() {
		return SignedRecord{}, NewError(InvalidTransaction,
			"timestamp not set, use NewIssuance or SetTimestamp")
	}
	chainID, err := i.CreateChainID()
	if err != nil {
		return SignedRecord{}, err
	}
	content, err := i.InitContent()
	if err != nil {
		return SignedRecord{}, NewError(InvalidParameter, "%v", err)
	}
	timeSalt := []byte(strconv.FormatInt(i.timestamp.Unix(), 10))
	return signRecord(chainID, timeSalt, content,
		[]Signer{IssuerSigner(*i.sk1)}), nil
}

// IssueToken creates the token chain, waits ChainFinalizationWait, then
// submits the signed initialization entry. The wait is the delay between
// each commit and its reveal. The response to the initialization reveal is
// returned.
func (i *Issuance) IssueToken(gw Gateway, wait time.Duration) (
	json.RawMessage, error) {

	init, err := i.Sign()
	if err != nil {
		return nil, err
	}
	nameIDs := NameIDs(i.tokenID, i.issuerChainID)
	if _, err := i.CreateChain(gw, []byte{}, nameIDs, wait); err != nil {
		return nil, err
	}
	log.Debugf("waiting %v for chain %v", ChainFinalizationWait, i.chainID)
	sleep(ChainFinalizationWait)
	return i.InitializeToken(gw, init.Content, init.ExtIDs, wait)
}
