package keeper

import (
	"encoding/binary"
)

var (
	// PoolKeyPrefix is the prefix for pool store keys
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the next pool ID counter
	PoolCountKey = []byte{0x02}

	// PoolByPairKeyPrefix is the prefix for indexing pools by asset pair and curve kind
	PoolByPairKeyPrefix = []byte{0x03}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}

	// ProtocolFeeKeyPrefix is the prefix for accumulated protocol fees per denom
	ProtocolFeeKeyPrefix = []byte{0x0A}
)

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PoolKeyPrefix, poolIDBytes...)
}

// PoolByPairKey returns the index key for a pool by its ordered pair and
// curve kind. Denoms are stored lexicographically so both orientations map
// to the same key, and each denom is length-prefixed so denoms containing
// arbitrary bytes (ibc/... paths) cannot collide.
func PoolByPairKey(denomA, denomB string, curveKind int32) []byte {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	key := make([]byte, 0, len(PoolByPairKeyPrefix)+2+len(denomA)+2+len(denomB)+4)
	key = append(key, PoolByPairKeyPrefix...)
	key = appendLengthPrefixed(key, denomA)
	key = appendLengthPrefixed(key, denomB)
	kindBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(kindBytes, uint32(curveKind))
	return append(key, kindBytes...)
}

func appendLengthPrefixed(key []byte, s string) []byte {
	lenBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBytes, uint16(len(s)))
	key = append(key, lenBytes...)
	return append(key, s...)
}

// ProtocolFeeKey returns the store key for protocol fees for a denom
func ProtocolFeeKey(denom string) []byte {
	return append(ProtocolFeeKeyPrefix, []byte(denom)...)
}
