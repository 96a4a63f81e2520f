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
	"bytes"
	"encoding/json"

	"github.com/Factom-Asset-Tokens/fatgo/fat/jsonlen"
)

// EncodeContent returns the canonical transaction content:
//
//	{"inputs":<inputs>,"outputs":<outputs>[,"metadata":<metadata>]}
//
// with no whitespace. The metadata is omitted if it is empty. The address
// maps are expected to marshal their entries in insertion order.
func EncodeContent(inputs, outputs json.Marshaler,
	metadata json.RawMessage) ([]byte, error) {

	in, err := jsonlen.Marshal(inputs)
	if err != nil {
		return nil, err
	}
	out, err := jsonlen.Marshal(outputs)
	if err != nil {
		return nil, err
	}

	l := len(`{"inputs":,"outputs":}`) + len(in) + len(out)
	if !IsEmptyMetadata(metadata) {
		l += len(`,"metadata":`) + len(metadata)
	}
	buf := bytes.NewBuffer(make([]byte, 0, l))
	buf.WriteString(`{"inputs":`)
	buf.Write(in)
	buf.WriteString(`,"outputs":`)
	buf.Write(out)
	if !IsEmptyMetadata(metadata) {
		buf.WriteString(`,"metadata":`)
		buf.Write(metadata)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsEmptyMetadata returns true if metadata is absent or is the JSON encoding
// of an empty or zero value: null, {}, [], "", 0 or false.
func IsEmptyMetadata(metadata json.RawMessage) bool {
	switch string(jsonlen.Compact(metadata)) {
	case "", "null", "{}", "[]", `""`, "0", "false":
		return true
	}
	return false
}

// marshalMetadata returns the compact JSON encoding of v.
func marshalMetadata(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := jsonlen.Marshal(v)
	if err != nil {
		return nil, NewError(InvalidParameter, "metadata: %v", err)
	}
	return data, nil
}
