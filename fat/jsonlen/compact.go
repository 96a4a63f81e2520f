// Package jsonlen provides helpers for producing and measuring the exact JSON
// bytes of FAT entry content.
package jsonlen

import (
	"bytes"
	"encoding/json"
)

// Compact returns data with all insignificant whitespace removed. If data is
// not valid JSON it is returned unmodified.
func Compact(data []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(data)))
	if err := json.Compact(buf, data); err != nil {
		return data
	}
	return buf.Bytes()
}

// Marshal returns the compact JSON encoding of v without escaping HTML
// characters, so that '<', '>' and '&' are written verbatim.
func Marshal(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates each value with a newline.
	return Compact(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
