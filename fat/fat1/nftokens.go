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

package fat1

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MaxCapacity is the maximum number of NFTokenIDs in an NFTokens set.
const MaxCapacity = 4e5

// maxCapacity is a variable so that tests may lower it.
var maxCapacity int = MaxCapacity

var ErrorCapacity = fmt.Errorf("NFTokenID max capacity (%v) exceeded", maxCapacity)

// NFTokens is a set of unique NFTokenIDs.
type NFTokens map[NFTokenID]struct{}

// NFTokensSetter is implemented by NFTokenID and NFTokenIDRange, the elements
// of an NFTokenAmount.
type NFTokensSetter interface {
	// Set adds the NFTokenIDs to tkns, or returns an
	// ErrorNFTokenIDIntersection if one of them is already present.
	Set(tkns NFTokens) error
	// Len is the number of NFTokenIDs that Set adds.
	Len() int
	// Valid returns an error if the NFTokenIDs are malformed.
	Valid() error
}

// NewNFTokens returns the set of all ids. It is an error for ids to overlap.
func NewNFTokens(ids ...NFTokensSetter) (NFTokens, error) {
	size := 0
	for _, id := range ids {
		if size += id.Len(); size > maxCapacity {
			return nil, ErrorCapacity
		}
	}
	tkns := make(NFTokens, size)
	if err := tkns.Set(ids...); err != nil {
		return nil, err
	}
	return tkns, nil
}

// Set adds ids to tkns. It stops at the first id that is already present.
func (tkns NFTokens) Set(ids ...NFTokensSetter) error {
	for _, id := range ids {
		if err := id.Set(tkns); err != nil {
			return err
		}
	}
	return nil
}

// Append adds all of newTkns to tkns. Nothing is added if the sets
// intersect.
func (tkns NFTokens) Append(newTkns NFTokens) error {
	if len(tkns)+len(newTkns) > maxCapacity {
		return ErrorCapacity
	}
	if err := tkns.NoIntersection(newTkns); err != nil {
		return err
	}
	for id := range newTkns {
		tkns[id] = struct{}{}
	}
	return nil
}

// ErrorNFTokenIDIntersection is the NFTokenID that two sets or ranges have
// in common.
type ErrorNFTokenIDIntersection NFTokenID

func (id ErrorNFTokenIDIntersection) Error() string {
	return fmt.Sprintf("duplicate NFTokenID: %v", NFTokenID(id))
}

// NoIntersection returns an ErrorNFTokenIDIntersection if any NFTokenID is in
// both tkns and other.
func (tkns NFTokens) NoIntersection(other NFTokens) error {
	// Iterate over the smaller set.
	if len(tkns) > len(other) {
		tkns, other = other, tkns
	}
	for id := range tkns {
		if other.contains(id) {
			return ErrorNFTokenIDIntersection(id)
		}
	}
	return nil
}

// ErrorMissingNFTokenID is an NFTokenID that is not in a set.
type ErrorMissingNFTokenID NFTokenID

func (id ErrorMissingNFTokenID) Error() string {
	return fmt.Sprintf("missing NFTokenID: %v", NFTokenID(id))
}

// ContainsAll returns an ErrorMissingNFTokenID for the lowest NFTokenID of
// sub that is not in tkns.
func (tkns NFTokens) ContainsAll(sub NFTokens) error {
	for _, id := range sub.Slice() {
		if !tkns.contains(id) {
			return ErrorMissingNFTokenID(id)
		}
	}
	return nil
}

func (tkns NFTokens) contains(id NFTokenID) bool {
	_, ok := tkns[id]
	return ok
}

// Slice returns the NFTokenIDs of tkns in ascending order.
func (tkns NFTokens) Slice() []NFTokenID {
	ids := make([]NFTokenID, 0, len(tkns))
	for id := range tkns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON encodes tkns in its Compress form. An empty tkns is an error.
func (tkns NFTokens) MarshalJSON() ([]byte, error) {
	if len(tkns) == 0 {
		return nil, fmt.Errorf("%T: empty", tkns)
	}
	return json.Marshal(tkns.Compress())
}

// Compress returns tkns as an NFTokenAmount in ascending order, using an
// NFTokenIDRange for each run of consecutive NFTokenIDs whose range encoding
// is not longer than listing them.
func (tkns NFTokens) Compress() NFTokenAmount {
	ids := tkns.Slice()
	var amount NFTokenAmount
	for start := 0; start < len(ids); {
		end := start + 1
		for end < len(ids) && ids[end] == ids[end-1]+1 {
			end++
		}
		run := NewNFTokenIDRange(ids[start], ids[end-1])
		if run.IsJSONEfficient() {
			amount = append(amount, run)
		} else {
			for _, id := range ids[start:end] {
				amount = append(amount, id)
			}
		}
		start = end
	}
	return amount
}

func (tkns *NFTokens) UnmarshalJSON(data []byte) error {
	var amount NFTokenAmount
	if err := amount.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%T: %w", tkns, err)
	}
	t, err := amount.NFTokens()
	if err != nil {
		return fmt.Errorf("%T: %w", tkns, err)
	}
	*tkns = t
	return nil
}
