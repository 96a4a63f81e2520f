package factom_test

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/Factom-Asset-Tokens/fatgo/factom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commitTimestamp = time.Unix(1571166720, 0)

var generateCommitTests = []struct {
	Name   string
	Entry  func() factom.Entry
	Cost   uint8
	Commit string
	TxID   string
}{{
	Name: "entry",
	Entry: func() factom.Entry {
		chainID := factom.ComputeChainID([]factom.Bytes{factom.Bytes("test")})
		return factom.Entry{ChainID: &chainID,
			Content: factom.Bytes("PayloadHere")}
	},
	Cost:   1,
	Commit: "00016dd0d5900072177d733dcd0492066b79c5f3e417aef7f22909674f7dc351ca13b04742bb9101f3838bc55e4dc1aa04acdca150c71d739f6b952d0164f2ba8a8b0cf109eec56b043be95c95658e4d41eb550578004565ac6636dd4eb882c99639d05e103724008f99d97c016598490cfde321cba35372178cb3301cbe883bb681f150da2c6c0b",
	TxID:   "f9d81fb19928bd61bf0da39ae7da62e2dac2c7e9d88180df633906be27c0ba4a",
}, {
	Name: "chain",
	Entry: func() factom.Entry {
		return factom.Entry{ExtIDs: []factom.Bytes{factom.Bytes("test")},
			Content: factom.Bytes("PayloadHere")}
	},
	Cost:   factom.NewChainCost + 1,
	Commit: "00016dd0d59000516870d4c0e1ee2d5f0d415e51fc10ae6b8d895561e9314afdc33048194d76f0cbce3a01007d9fb35aeb5700ba8cc6aac8e12ef13bb7361fa757e78d31a5b8e0be705a58aea4230e99881f625e74cd085b6ef455b94ff144249b9a2f425e8f960bf3838bc55e4dc1aa04acdca150c71d739f6b952d0164f2ba8a8b0cf109eec56b0e837babb6cb27623569b79b3eb1272f71267deeced07d152c5eb56a64968be2c0673bdc6673d7321c24fa84c5684e619fcf82499751e32945cfe42da8923803",
	TxID:   "d2864ef663f185d73c0ad6c9a12bbe3f16e46db9d3a202a1b515158a5a59b03c",
}}

func TestGenerateCommit(t *testing.T) {
	es, err := factom.NewEsAddress(esStr)
	require.NoError(t, err)
	for _, test := range generateCommitTests {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			e := test.Entry()
			commit, txID, err := factom.GenerateCommit(es, &e, test.Cost,
				commitTimestamp)
			require.NoError(err)
			assert.Equal(test.Commit, hex.EncodeToString(commit))
			assert.Equal(test.TxID, txID.String())
			assert.NotNil(e.ChainID)
			assert.NotNil(e.Hash)
			assert.NoError(factom.VerifyCommit(commit))
		})
	}
}

func TestVerifyCommit(t *testing.T) {
	commit, err := hex.DecodeString(generateCommitTests[0].Commit)
	require.NoError(t, err)

	assert.EqualError(t, factom.VerifyCommit(commit[1:]), "invalid length")

	tampered := append([]byte{}, commit...)
	tampered[39]++ // EC cost
	assert.EqualError(t, factom.VerifyCommit(tampered), "invalid signature")

	tampered = append([]byte{}, commit...)
	tampered[0] = 0x01
	assert.EqualError(t, factom.VerifyCommit(tampered), "invalid version byte")
}
