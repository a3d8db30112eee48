package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// BIP44Purpose is the purpose level for legacy P2PKH derivation.
const BIP44Purpose = 44

// Session is the wallet's spending identity for one run: the P2PKH address
// and the opaque signing capability over its key. Both are read-only to the
// transaction core once derived.
type Session struct {
	Address string

	signer *KeySigner
}

// Signer returns the session's signing capability.
func (s *Session) Signer() *KeySigner { return s.signer }

// ExportWIF returns the session key in wallet import format.
func (s *Session) ExportWIF() (string, error) { return s.signer.WIF() }

// DeriveWallet derives the spending session from a recovery phrase.
//
// Derivation path is m/44'/coin'/0'/0/0 with coin taken from the network
// parameters, and the address is the compressed-key P2PKH form.
func DeriveWallet(mnemonic, passphrase string, params *chaincfg.Params) (*Session, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	return deriveSession(seed, params)
}

// deriveSession walks the BIP44 path to the first external key.
func deriveSession(seed []byte, params *chaincfg.Params) (*Session, error) {
	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("%w: master key: %w", ErrDerivationFailed, err)
	}
	defer master.Zero()

	key := master
	steps := []uint32{
		hdkeychain.HardenedKeyStart + BIP44Purpose,
		hdkeychain.HardenedKeyStart + params.HDCoinType,
		hdkeychain.HardenedKeyStart, // account 0'
		0,                           // external chain
		0,                           // index 0
	}
	for _, step := range steps {
		if key, err = key.Derive(step); err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", ErrDerivationFailed, step, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: private key: %w", ErrDerivationFailed, err)
	}

	pubKeyHash := btcutil.Hash160(priv.PubKey().SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, params)
	if err != nil {
		return nil, fmt.Errorf("%w: address: %w", ErrDerivationFailed, err)
	}

	return &Session{
		Address: addr.EncodeAddress(),
		signer:  &KeySigner{priv: priv, params: params},
	}, nil
}

// KeySigner is a software implementation of the signing capability: it
// produces legacy P2PKH signature scripts with SIGHASH_ALL over a
// compressed public key. It satisfies the transaction core's InputSigner.
type KeySigner struct {
	priv   *btcec.PrivateKey
	params *chaincfg.Params
}

// SignInput returns the complete signature script for input idx of t,
// spending prevOut.
func (k *KeySigner) SignInput(t *wire.MsgTx, idx int, prevOut *wire.TxOut) ([]byte, error) {
	if prevOut == nil {
		return nil, fmt.Errorf("wallet: sign input %d: nil previous output", idx)
	}
	return txscript.SignatureScript(t, idx, prevOut.PkScript, txscript.SigHashAll, k.priv, true)
}

// WIF exports the key in wallet import format (compressed).
func (k *KeySigner) WIF() (string, error) {
	wif, err := btcutil.NewWIF(k.priv, k.params, true)
	if err != nil {
		return "", fmt.Errorf("wallet: WIF export: %w", err)
	}
	return wif.String(), nil
}
