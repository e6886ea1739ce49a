package value_objects

import "crypto/rsa"

// KeyPairSet is the key material one merchant integration holds. It is
// parsed once and never mutated.
type KeyPairSet struct {
	MerchantSigningKey    *rsa.PrivateKey
	PacoEncryptionKey     *rsa.PublicKey
	MerchantDecryptionKey *rsa.PrivateKey
	PacoSigningKey        *rsa.PublicKey
}
