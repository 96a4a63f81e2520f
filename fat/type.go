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
	"fmt"
	"strconv"
	"strings"
)

// Type is the FAT protocol of a token. It is written into the "type" field
// of the issuance content.
type Type uint64

const (
	TypeFAT0 Type = iota
	TypeFAT1
)

const typePrefix = "FAT-"

// Set parses s, which must be "FAT-0" or "FAT-1", into t.
func (t *Type) Set(s string) error {
	if !strings.HasPrefix(s, typePrefix) {
		return fmt.Errorf("%T: invalid format", t)
	}
	num, err := strconv.ParseUint(s[len(typePrefix):], 10, 64)
	if err != nil {
		return fmt.Errorf("%T: %w", t, err)
	}
	if !Type(num).IsValid() {
		return fmt.Errorf("%T: unsupported: %v", t, s)
	}
	*t = Type(num)
	return nil
}

// UnmarshalJSON decodes a JSON string such as "FAT-0".
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%T: expected JSON string", t)
	}
	return t.Set(s)
}

func (t Type) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%v", t)
	}
	return []byte(strconv.Quote(t.String())), nil
}

func (t Type) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("invalid fat.Type: %v", uint64(t))
	}
	return typePrefix + strconv.FormatUint(uint64(t), 10)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeFAT0, TypeFAT1:
		return true
	}
	return false
}
