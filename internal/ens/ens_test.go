package ens

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestNamehash(t *testing.T) {
	// Reference vectors from EIP-137.
	tests := []struct {
		name string
		want string
	}{
		{"", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth", "93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth", "de9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := Namehash(tt.name)
			if got := hex.EncodeToString(node[:]); got != tt.want {
				t.Errorf("Namehash(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestReverseNode_CaseAndPrefixInsensitive(t *testing.T) {
	a := ReverseNode("0x1234567890AbCdEf1234567890aBcDeF12345678")
	b := ReverseNode("1234567890abcdef1234567890abcdef12345678")
	if a != b {
		t.Error("reverse node should not depend on case or 0x prefix")
	}
	if a == ([32]byte{}) {
		t.Error("reverse node should not be the zero node")
	}
}

func TestUnpackAddress(t *testing.T) {
	want := common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678")
	ret := make([]byte, 32)
	copy(ret[12:], want.Bytes())

	got, ok := unpackAddress(ret)
	if !ok || got != want {
		t.Errorf("unpackAddress = %s, %v; want %s", got, ok, want)
	}

	if _, ok := unpackAddress([]byte{0x01}); ok {
		t.Error("short return should not decode")
	}
}

func TestUnpackString(t *testing.T) {
	// ABI encoding of the string "alice.eth": offset word, length word, data.
	ret := make([]byte, 96)
	ret[31] = 0x20
	ret[63] = 9
	copy(ret[64:], "alice.eth")

	got, ok := unpackString(ret)
	if !ok || got != "alice.eth" {
		t.Errorf("unpackString = %q, %v", got, ok)
	}

	t.Run("malformed", func(t *testing.T) {
		if _, ok := unpackString(nil); ok {
			t.Error("nil return should not decode")
		}
		if _, ok := unpackString(make([]byte, 63)); ok {
			t.Error("short return should not decode")
		}
		// Offset pointing past the end of the data.
		bad := make([]byte, 64)
		bad[31] = 0xff
		if _, ok := unpackString(bad); ok {
			t.Error("out-of-range offset should not decode")
		}
		// Length overrunning the data.
		over := make([]byte, 96)
		over[31] = 0x20
		over[63] = 0xff
		if _, ok := unpackString(over); ok {
			t.Error("overlong length should not decode")
		}
		// Offset word near 2^64, crafted so a naive offset+32 comparison
		// wraps around and passes.
		wrap := make([]byte, 96)
		for i := 24; i < 32; i++ {
			wrap[i] = 0xff
		}
		wrap[31] = 0xf0
		if _, ok := unpackString(wrap); ok {
			t.Error("wrapping offset should not decode")
		}
		// Same wrap on the length word.
		wrapLen := make([]byte, 96)
		wrapLen[31] = 0x20
		for i := 56; i < 64; i++ {
			wrapLen[i] = 0xff
		}
		wrapLen[63] = 0xf0
		if _, ok := unpackString(wrapLen); ok {
			t.Error("wrapping length should not decode")
		}
		// Offset wider than 64 bits.
		wide := make([]byte, 96)
		wide[0] = 0x01
		if _, ok := unpackString(wide); ok {
			t.Error("oversized offset word should not decode")
		}
	})
}

func TestNop_ResolveName(t *testing.T) {
	if got := (Nop{}).ResolveName(context.Background(), "0xabc"); got != "" {
		t.Errorf("Nop should always yield no name, got %q", got)
	}
}
