package ens

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/crypto/sha3"
)

// RegistryAddress is the ENS registry deployed at the same address on mainnet
// and the common testnets.
var RegistryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// 4-byte selectors for registry resolver(bytes32) and resolver name(bytes32).
var (
	selectorResolver = []byte{0x01, 0x78, 0xb8, 0xbf}
	selectorName     = []byte{0x69, 0x1f, 0x34, 0x31}
)

// Client resolves reverse ENS records over an Ethereum JSON-RPC endpoint.
// It walks the registry by hand, resolver(node) on the registry and then
// name(node) on the returned resolver, with packed calldata. Production code
// wanting forward verification or wildcard resolution would bind the full
// contracts through abigen.
type Client struct {
	eth     *ethclient.Client
	timeout time.Duration
	logger  *slog.Logger
}

// Dial connects to an Ethereum JSON-RPC endpoint. Each lookup RPC is bounded
// by timeout.
func Dial(rpcURL string, timeout time.Duration) (*Client, error) {
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return &Client{
		eth:     ec,
		timeout: timeout,
		logger:  slog.Default().With("component", "ens"),
	}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// ResolveName looks up the reverse record for address. Any failure along the
// way yields "", which callers treat as "no name found".
func (c *Client) ResolveName(ctx context.Context, address string) string {
	if !common.IsHexAddress(address) {
		return ""
	}
	node := ReverseNode(address)

	ret, err := c.call(ctx, RegistryAddress, append(selectorResolver, node[:]...))
	if err != nil {
		c.logger.Debug("registry lookup failed", "address", address, "error", err)
		return ""
	}
	resolverAddr, ok := unpackAddress(ret)
	if !ok || resolverAddr == (common.Address{}) {
		return "" // no reverse record configured
	}

	ret, err = c.call(ctx, resolverAddr, append(selectorName, node[:]...))
	if err != nil {
		c.logger.Debug("name lookup failed", "address", address, "error", err)
		return ""
	}
	name, ok := unpackString(ret)
	if !ok {
		return ""
	}
	return name
}

func (c *Client) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// Namehash implements the EIP-137 recursive hash over a dot-separated name.
func Namehash(name string) [32]byte {
	var node [32]byte
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := keccak256([]byte(labels[i]))
		node = keccak256(append(node[:], label[:]...))
	}
	return node
}

// ReverseNode returns the namehash of "<addr-hex>.addr.reverse" for address.
func ReverseNode(address string) [32]byte {
	hexAddr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	return Namehash(hexAddr + ".addr.reverse")
}

func keccak256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// unpackAddress decodes a single ABI-encoded address return value.
func unpackAddress(ret []byte) (common.Address, bool) {
	if len(ret) < 32 {
		return common.Address{}, false
	}
	return common.BytesToAddress(ret[12:32]), true
}

// unpackString decodes a single ABI-encoded dynamic string return value
// (offset word, length word, then the bytes).
func unpackString(ret []byte) (string, bool) {
	if len(ret) < 64 {
		return "", false
	}
	// The offset and length words come from an untrusted contract. Compare in
	// subtraction form so oversized words cannot wrap around uint64.
	size := uint64(len(ret))
	offset := new(big.Int).SetBytes(ret[:32])
	if !offset.IsUint64() || offset.Uint64() > size-32 {
		return "", false
	}
	o := offset.Uint64()
	length := new(big.Int).SetBytes(ret[o : o+32])
	if !length.IsUint64() || length.Uint64() > size-o-32 {
		return "", false
	}
	return string(ret[o+32 : o+32+length.Uint64()]), true
}
