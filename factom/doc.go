// Package factom provides the Factom data types and codecs needed to pay for
// and submit entries to the Factom blockchain without a wallet daemon.
//
// The four address types FAAddress, FsAddress, ECAddress and EsAddress, and
// the identity keys ID1Key and SK1Key, are 32 byte payloads that encode to
// and from their human readable base58check form. The private types derive
// their ed25519 keys and RCDs.
//
// Entry marshals to the binary reveal format and computes entry hashes and
// chain IDs. GenerateCommit builds and signs the commit-entry and
// commit-chain messages that pay Entry Credits for an Entry.
//
// Client sends commits and reveals to factomd's v2 API. An error from factomd
// itself is a jsonrpc2.Error, which separates it from transport failures.
//
// Bytes and Bytes32 are hex encoded in JSON and on the command line. Chain
// IDs and entry hashes are Bytes32.
package factom
