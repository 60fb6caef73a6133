package wallet

import (
	"encoding/hex"
	"strings"
)

// ChecksumAddress returns the EIP-55 mixed-case form of a hex address.
// Inputs that are not 20-byte hex addresses are returned unchanged.
func ChecksumAddress(address string) string {
	raw := strings.ToLower(strings.TrimPrefix(address, "0x"))
	if len(raw) != 40 {
		return address
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return address
	}

	hash := keccak256([]byte(raw))
	var b strings.Builder
	b.WriteString("0x")
	for i, c := range []byte(raw) {
		// Uppercase a letter when the corresponding hash nibble is >= 8.
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if c >= 'a' && c <= 'f' && nibble&0x0f >= 8 {
			c -= 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// IsHexAddress reports whether s looks like a 0x-prefixed 20-byte hex address.
func IsHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) != 42 {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}
