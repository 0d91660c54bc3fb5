package remote

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

const wordSize = 32

// encodeSpotBalanceCall packs abi.encode(address, uint64 token): two
// 32-byte words, both left-padded big-endian.
func encodeSpotBalanceCall(addr common.Address, tokenIndex uint32) []byte {
	data := make([]byte, 2*wordSize)
	copy(data[wordSize-common.AddressLength:wordSize], addr.Bytes())
	binary.BigEndian.PutUint64(data[2*wordSize-8:], uint64(tokenIndex))
	return data
}

// encodeAddressCall packs abi.encode(address): one 32-byte word.
func encodeAddressCall(addr common.Address) []byte {
	data := make([]byte, wordSize)
	copy(data[wordSize-common.AddressLength:], addr.Bytes())
	return data
}

// decodeUint64Word reads a uint64 out of the first return word. The spot
// balance precompile returns (total, hold, entryNtl); total is the first
// word, so this covers both precompiles.
func decodeUint64Word(out []byte) (uint64, error) {
	if len(out) < wordSize {
		return 0, fmt.Errorf("short return data: %d bytes", len(out))
	}
	for _, b := range out[:wordSize-8] {
		if b != 0 {
			return 0, fmt.Errorf("return word overflows uint64")
		}
	}
	return binary.BigEndian.Uint64(out[wordSize-8 : wordSize]), nil
}
