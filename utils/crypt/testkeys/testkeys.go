// Package testkeys generates the four RSA keys of a PACO integration for
// tests. Keys are generated once per test binary.
package testkeys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"sync"

	"hbl-card-payment/domain/value_objects"
	"hbl-card-payment/utils/configs"
)

const bits = 2048

type Keys struct {
	MerchantSigning    *rsa.PrivateKey
	PacoEncryption     *rsa.PrivateKey
	MerchantDecryption *rsa.PrivateKey
	PacoSigning        *rsa.PrivateKey
}

var (
	once sync.Once
	keys *Keys
)

func Get() *Keys {
	once.Do(func() {
		keys = &Keys{
			MerchantSigning:    generate(),
			PacoEncryption:     generate(),
			MerchantDecryption: generate(),
			PacoSigning:        generate(),
		}
	})
	return keys
}

// NewKey returns a fresh key outside the set, e.g. to sign with the wrong key.
func NewKey() *rsa.PrivateKey {
	return generate()
}

func generate() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		panic(err)
	}
	return key
}

// KeyPairSet is the merchant's view: its own private keys, PACO's public ones.
func (k *Keys) KeyPairSet() value_objects.KeyPairSet {
	return value_objects.KeyPairSet{
		MerchantSigningKey:    k.MerchantSigning,
		PacoEncryptionKey:     &k.PacoEncryption.PublicKey,
		MerchantDecryptionKey: k.MerchantDecryption,
		PacoSigningKey:        &k.PacoSigning.PublicKey,
	}
}

// Raw renders the merchant's keys the way they are configured: bare base64
// bodies without PEM armour.
func (k *Keys) Raw() configs.PacoKeys {
	return configs.PacoKeys{
		MerchantSigningPrivateKey:    PrivateBody(k.MerchantSigning),
		PacoEncryptionPublicKey:      PublicBody(&k.PacoEncryption.PublicKey),
		MerchantDecryptionPrivateKey: PrivateBody(k.MerchantDecryption),
		PacoSigningPublicKey:         PublicBody(&k.PacoSigning.PublicKey),
	}
}

// PrivateBody is the base64 PKCS#1 DER of key.
func PrivateBody(key *rsa.PrivateKey) string {
	return base64.StdEncoding.EncodeToString(x509.MarshalPKCS1PrivateKey(key))
}

// PKCS8Body is the base64 PKCS#8 DER of key.
func PKCS8Body(key *rsa.PrivateKey) string {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(der)
}

// PublicBody is the base64 PKIX DER of key.
func PublicBody(key *rsa.PublicKey) string {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(der)
}
