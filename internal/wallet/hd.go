package wallet

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/sha3"
)

// HDProvider is a headless Provider deriving Ethereum accounts from a BIP-39
// mnemonic. It stands in for a browser wallet in server and CLI hosts.
// Derivation path: m/44'/60'/0'/0/{index}
type HDProvider struct {
	accounts []string
}

// NewHDProvider derives count accounts from the mnemonic. The mnemonic is
// checksum-validated; derived addresses are EIP-55 checksummed.
func NewHDProvider(mnemonic string, count int) (*HDProvider, error) {
	if count <= 0 {
		count = 1
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	accounts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		key, err := deriveKey(seed, uint32(i))
		if err != nil {
			return nil, fmt.Errorf("derive account %d: %w", i, err)
		}
		accounts = append(accounts, addressFromKey(key))
	}
	return &HDProvider{accounts: accounts}, nil
}

// RequestAccounts returns the derived accounts. It never fails: a configured
// HD provider always has at least one account.
func (p *HDProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	out := make([]string, len(p.accounts))
	copy(out, p.accounts)
	return out, nil
}

// deriveKey derives a child private key from a BIP-39 seed using BIP-32/BIP-44.
// Path: m/44'/60'/0'/0/{index}
func deriveKey(seed []byte, index uint32) ([]byte, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}

	// m/44'
	purpose, err := masterKey.NewChildKey(bip32.FirstHardenedChild + 44)
	if err != nil {
		return nil, fmt.Errorf("derive purpose: %w", err)
	}

	// m/44'/60'
	coin, err := purpose.NewChildKey(bip32.FirstHardenedChild + 60)
	if err != nil {
		return nil, fmt.Errorf("derive coin: %w", err)
	}

	// m/44'/60'/0'
	account, err := coin.NewChildKey(bip32.FirstHardenedChild + 0)
	if err != nil {
		return nil, fmt.Errorf("derive account: %w", err)
	}

	// m/44'/60'/0'/0
	change, err := account.NewChildKey(0)
	if err != nil {
		return nil, fmt.Errorf("derive change: %w", err)
	}

	// m/44'/60'/0'/0/{index}
	child, err := change.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child: %w", err)
	}

	return child.Key, nil
}

// addressFromKey computes the Ethereum address for a secp256k1 private key:
// last 20 bytes of Keccak256(uncompressed public key).
func addressFromKey(key []byte) string {
	_, pubKey := btcec.PrivKeyFromBytes(key[:32])
	pubBytes := pubKey.SerializeUncompressed()

	hash := keccak256(pubBytes[1:]) // skip 0x04 prefix
	return ChecksumAddress("0x" + hex.EncodeToString(hash[12:]))
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
