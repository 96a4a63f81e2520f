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

import "github.com/Factom-Asset-Tokens/fatgo/factom"

var coinbase = func() factom.FAAddress {
	priv := factom.FsAddress{}
	return priv.FAAddress()
}()

// Coinbase returns the reserved address that signals a mint: the FA address
// of the all zero private key.
func Coinbase() factom.FAAddress {
	return coinbase
}

// ParseAddress validates adrStr as a human readable FA address.
func ParseAddress(adrStr string) (factom.FAAddress, error) {
	adr, err := factom.NewFAAddress(adrStr)
	if err != nil {
		return adr, NewError(InvalidParameter, "address %q: %v", adrStr, err)
	}
	return adr, nil
}
