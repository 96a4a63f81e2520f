// Package fat builds, signs and submits Factom Asset Token entries.
//
// The FAT-0 and FAT-1 transaction builders in the fat0 and fat1 packages
// embed Entry, which holds the token chain ID, the optional metadata, the
// ordered signers and the timestamp salt. Signing a transaction produces a
// SignedRecord whose ExtIDs hold the timestamp followed by an RCD and
// signature per signer. The signed message of the i-th signer is
//
//	sha512(decimal(i) || decimal(timestamp) || chainID || content)
//
// Transfers are signed with the Fs keys of their inputs (TransferSigner).
// Coinbase transactions, which mint new tokens, are signed with the issuer's
// SK1 key (IssuerSigner).
//
// Issuance creates a token chain and submits its signed initialization
// entry. Any Gateway, such as *factom.Client, is used to submit the commits
// and reveals.
//
// Errors describing invalid input are of type Error and can be matched by
// kind with errors.Is and the ErrInvalidParameter,
// ErrMissingRequiredParameter, ErrInvalidChainID and ErrInvalidTransaction
// sentinels.
package fat
