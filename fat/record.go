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
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/Factom-Asset-Tokens/fatgo/fat/jsonlen"
	_log "github.com/Factom-Asset-Tokens/fatgo/internal/log"
	"golang.org/x/crypto/ed25519"
)

var log = _log.New("fat")

// sleep blocks between a commit and its reveal. Tests replace it.
var sleep = time.Sleep

// DefaultWait is the default delay between a commit and its reveal.
const DefaultWait = 2 * time.Second

// Gateway submits commits and reveals to a Factom node. The responses are
// returned to the caller unmodified. factom.Client implements Gateway.
type Gateway interface {
	CommitChain(commit []byte) (json.RawMessage, error)
	RevealChain(reveal []byte) (json.RawMessage, error)
	CommitEntry(commit []byte) (json.RawMessage, error)
	RevealEntry(reveal []byte) (json.RawMessage, error)
}

var _ Gateway = &factom.Client{}

// SignedRecord is a signed FAT entry ready for submission. ExtIDs[0] is the
// decimal timestamp salt, followed by an RCD and signature pair per signer.
type SignedRecord struct {
	ChainID factom.Bytes32
	ExtIDs  []factom.Bytes
	Content factom.Bytes
}

// Entry returns the factom.Entry for r.
func (r SignedRecord) Entry() factom.Entry {
	chainID := r.ChainID
	return factom.Entry{ChainID: &chainID, ExtIDs: r.ExtIDs, Content: r.Content}
}

// Verify returns nil if the ExtIDs of r hold a timestamp salt followed by
// well formed RCD and signature pairs that each verify against the content.
func (r SignedRecord) Verify() error {
	if len(r.ExtIDs) < 3 || len(r.ExtIDs)%2 != 1 {
		return fmt.Errorf("invalid number of ExtIDs")
	}
	timeSalt := r.ExtIDs[0]
	if _, err := strconv.ParseInt(string(timeSalt), 10, 64); err != nil {
		return fmt.Errorf("timestamp salt: %w", err)
	}
	rcdSigs := r.ExtIDs[1:]
	numRCDSigPairs := len(rcdSigs) / 2

	maxSaltLen := jsonlen.Uint64(uint64(numRCDSigPairs))
	msg := make([]byte, maxSaltLen+len(timeSalt)+len(r.ChainID)+len(r.Content))
	i := maxSaltLen
	i += copy(msg[i:], timeSalt)
	i += copy(msg[i:], r.ChainID[:])
	copy(msg[i:], r.Content)

	for rcdSigID := 0; rcdSigID < numRCDSigPairs; rcdSigID++ {
		rcd := rcdSigs[rcdSigID*2]
		if len(rcd) != factom.RCDSize {
			return fmt.Errorf("ExtIDs[%v]: invalid RCD size", rcdSigID*2+1)
		}
		if rcd[0] != factom.RCDType {
			return fmt.Errorf("ExtIDs[%v]: invalid RCD type", rcdSigID*2+1)
		}
		sig := rcdSigs[rcdSigID*2+1]
		if len(sig) != factom.SignatureSize {
			return fmt.Errorf("ExtIDs[%v]: invalid signature size",
				rcdSigID*2+2)
		}

		salt := strconv.FormatUint(uint64(rcdSigID), 10)
		start := maxSaltLen - len(salt)
		copy(msg[start:], salt)
		msgHash := sha512.Sum512(msg[start:])
		if !ed25519.Verify([]byte(rcd[1:]), msgHash[:], sig) {
			return fmt.Errorf("ExtIDs[%v]: invalid signature", rcdSigID*2+2)
		}
	}
	return nil
}

// Submit pays for r with Entry Credits from es and submits it to the token
// chain as a commit-entry followed, after wait, by a reveal-entry. The
// reveal response is returned.
func (r SignedRecord) Submit(gw Gateway, es factom.EsAddress,
	wait time.Duration) (json.RawMessage, error) {
	e := r.Entry()
	data, err := e.MarshalBinary()
	if err != nil {
		return nil, NewError(InvalidTransaction, "%v", err)
	}
	cost, err := factom.EntryCost(len(data))
	if err != nil {
		return nil, NewError(InvalidTransaction, "%v", err)
	}
	return commitReveal(gw, es, e, cost, time.Now(), wait)
}

// commitReveal commits to e paying cost, sleeps for wait, then reveals e. If
// e.ChainID is nil a new chain is created.
func commitReveal(gw Gateway, es factom.EsAddress, e factom.Entry,
	cost uint8, ts time.Time, wait time.Duration) (json.RawMessage, error) {

	newChain := e.ChainID == nil
	commit, txID, err := factom.GenerateCommit(es, &e, cost, ts)
	if err != nil {
		return nil, NewError(InvalidTransaction, "%v", err)
	}
	reveal, err := e.MarshalBinary()
	if err != nil {
		return nil, NewError(InvalidTransaction, "%v", err)
	}

	commitFn, revealFn, kind := gw.CommitEntry, gw.RevealEntry, "entry"
	if newChain {
		commitFn, revealFn, kind = gw.CommitChain, gw.RevealChain, "chain"
	}
	log.Debugf("commit-%v: txid: %v, chain: %v, entry: %v, cost: %v",
		kind, txID, e.ChainID, e.Hash, cost)
	if _, err := commitFn(commit); err != nil {
		return nil, fmt.Errorf("commit-%v: %w", kind, err)
	}
	sleep(wait)
	log.Debugf("reveal-%v: entry: %v", kind, e.Hash)
	result, err := revealFn(reveal)
	if err != nil {
		return nil, fmt.Errorf("reveal-%v: %w", kind, err)
	}
	return result, nil
}
