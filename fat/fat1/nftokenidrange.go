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

	"github.com/Factom-Asset-Tokens/fatgo/fat/jsonlen"
)

// NFTokenIDRange is the contiguous range of NFTokenIDs from Min to Max,
// inclusive. It encodes as {"min":Min,"max":Max}.
type NFTokenIDRange struct {
	Min NFTokenID `json:"min"`
	Max NFTokenID `json:"max"`
}

// NewNFTokenIDRange returns the range between the first two of minMax, in
// either order, or the single NFTokenID range of minMax[0].
func NewNFTokenIDRange(minMax ...NFTokenID) NFTokenIDRange {
	switch len(minMax) {
	case 0:
		return NFTokenIDRange{}
	case 1:
		return NFTokenIDRange{Min: minMax[0], Max: minMax[0]}
	}
	min, max := minMax[0], minMax[1]
	if min > max {
		min, max = max, min
	}
	return NFTokenIDRange{Min: min, Max: max}
}

// Len returns the number of NFTokenIDs in idRange, or 0 if Min > Max.
func (idRange NFTokenIDRange) Len() int {
	if idRange.Min > idRange.Max {
		return 0
	}
	return int(idRange.Max-idRange.Min) + 1
}

// Valid returns an error if Min > Max or if idRange holds more than
// MaxCapacity NFTokenIDs.
func (idRange NFTokenIDRange) Valid() error {
	if idRange.Min > idRange.Max {
		return fmt.Errorf("%T: Min is greater than Max", idRange)
	}
	if idRange.Max-idRange.Min >= MaxCapacity {
		return ErrorCapacity
	}
	return nil
}

// Set adds every NFTokenID of idRange to tkns.
func (idRange NFTokenIDRange) Set(tkns NFTokens) error {
	if err := idRange.Valid(); err != nil {
		return err
	}
	if len(tkns)+idRange.Len() > maxCapacity {
		return fmt.Errorf("%T(len:%v): %T(%v): %w",
			tkns, len(tkns), idRange, idRange, ErrorCapacity)
	}
	for _, id := range idRange.Slice() {
		if err := id.Set(tkns); err != nil {
			return err
		}
	}
	return nil
}

// Slice returns the NFTokenIDs of idRange in ascending order.
func (idRange NFTokenIDRange) Slice() []NFTokenID {
	ids := make([]NFTokenID, idRange.Len())
	for i := range ids {
		ids[i] = idRange.Min + NFTokenID(i)
	}
	return ids
}

// IsJSONEfficient reports whether the {"min","max"} encoding of idRange is
// no longer than the comma separated list of its NFTokenIDs.
func (idRange NFTokenIDRange) IsJSONEfficient() bool {
	return idRange.jsonLen() <= idRange.expandedLen()
}

// String returns "Min-Max", or the list of NFTokenIDs when that is shorter.
func (idRange NFTokenIDRange) String() string {
	if idRange.strLen() > idRange.expandedLen() {
		return fmt.Sprintf("%v", idRange.Slice())
	}
	return fmt.Sprintf("%v-%v", idRange.Min, idRange.Max)
}

// expandedLen is the length of every NFTokenID of idRange followed by a
// comma.
func (idRange NFTokenIDRange) expandedLen() int {
	if idRange.Min > idRange.Max {
		return 0
	}
	var l int
	lo, max := uint64(idRange.Min), uint64(idRange.Max)
	for {
		// Count all IDs with the same number of digits as lo at once.
		digits := jsonlen.Uint64(lo)
		hi := max
		if digits < 20 {
			bandMax := uint64(1)
			for i := 0; i < digits; i++ {
				bandMax *= 10
			}
			if bandMax-1 < hi {
				hi = bandMax - 1
			}
		}
		l += int(hi-lo+1) * (digits + len(`,`))
		if hi == max {
			return l
		}
		lo = hi + 1
	}
}

// nfTokenIDRange avoids recursion in MarshalJSON and UnmarshalJSON.
type nfTokenIDRange NFTokenIDRange

// MarshalJSON always uses the object encoding, so that a range given by the
// caller is encoded as given.
func (idRange NFTokenIDRange) MarshalJSON() ([]byte, error) {
	if err := idRange.Valid(); err != nil {
		return nil, err
	}
	return json.Marshal(nfTokenIDRange(idRange))
}

// UnmarshalJSON accepts only the exact compact {"min":Min,"max":Max}
// encoding of a valid range.
func (idRange *NFTokenIDRange) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*nfTokenIDRange)(idRange)); err != nil {
		return fmt.Errorf("%T: %w", idRange, err)
	}
	if err := idRange.Valid(); err != nil {
		return fmt.Errorf("%T: %w", idRange, err)
	}
	if len(jsonlen.Compact(data)) != idRange.jsonLen() {
		return fmt.Errorf("%T: unexpected JSON length", idRange)
	}
	return nil
}

func (idRange NFTokenIDRange) jsonLen() int {
	return len(`{"min":,"max":}`) +
		idRange.Min.jsonLen() + idRange.Max.jsonLen()
}

func (idRange NFTokenIDRange) strLen() int {
	return idRange.Min.jsonLen() + len(`-`) + idRange.Max.jsonLen()
}
