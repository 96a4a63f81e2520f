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

import "fmt"

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// InvalidParameter is a malformed field value: an address, amount, key
	// type, symbol or metadata shape.
	InvalidParameter ErrorKind = iota + 1
	// MissingRequiredParameter is a required identifier, or combination of
	// identifiers, that is absent.
	MissingRequiredParameter
	// InvalidChainID is a chain ID that is not 32 bytes of hex.
	InvalidChainID
	// InvalidTransaction is signing attempted on a builder that is not
	// valid.
	InvalidTransaction
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case MissingRequiredParameter:
		return "missing required parameter"
	case InvalidChainID:
		return "invalid chain id"
	case InvalidTransaction:
		return "invalid transaction"
	}
	return fmt.Sprintf("fat.ErrorKind(%d)", int(k))
}

// Error is returned by the builders in this package and its subpackages.
// Use errors.Is with the Err* sentinels to test for a kind.
type Error struct {
	Kind ErrorKind
	Msg  string
}

// Sentinels for use with errors.Is. They match any Error of the same Kind.
var (
	ErrInvalidParameter         = Error{Kind: InvalidParameter}
	ErrMissingRequiredParameter = Error{Kind: MissingRequiredParameter}
	ErrInvalidChainID           = Error{Kind: InvalidChainID}
	ErrInvalidTransaction       = Error{Kind: InvalidTransaction}
)

func (err Error) Error() string {
	if len(err.Msg) == 0 {
		return err.Kind.String()
	}
	return fmt.Sprintf("%v: %v", err.Kind, err.Msg)
}

// Is reports whether target is an Error of the same Kind.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Kind == err.Kind
}

// NewError returns an Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) Error {
	return Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
