package crypt

import (
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"hbl-card-payment/domain/value_objects"
	"hbl-card-payment/utils/configs"
	gwErrors "hbl-card-payment/utils/errors"
)

const (
	rsaPrivateKeyLabel = "RSA PRIVATE KEY"
	publicKeyLabel     = "PUBLIC KEY"
)

// LoadPrivateKey parses a bare base64 key body as an RSA private key. PKCS#1
// and PKCS#8 bodies are accepted, as is input that is already PEM armoured.
func LoadPrivateKey(raw string) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(armour(raw, rsaPrivateKeyLabel)))
	if err != nil {
		return nil, fmt.Errorf("%w: private key: %v", gwErrors.ErrKeyFormat, err)
	}
	return key, nil
}

// LoadPublicKey parses a bare base64 key body as an RSA public key.
func LoadPublicKey(raw string) (*rsa.PublicKey, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(armour(raw, publicKeyLabel)))
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", gwErrors.ErrKeyFormat, err)
	}
	return key, nil
}

func armour(raw, label string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "-----BEGIN ") {
		return raw
	}
	return fmt.Sprintf("-----BEGIN %s-----\n%s\n-----END %s-----", label, raw, label)
}

// LoadKeyPairSet parses the four configured keys. The error names the key by
// role only.
func LoadKeyPairSet(keys configs.PacoKeys) (value_objects.KeyPairSet, error) {
	var (
		set value_objects.KeyPairSet
		err error
	)

	if set.MerchantSigningKey, err = LoadPrivateKey(keys.MerchantSigningPrivateKey); err != nil {
		return value_objects.KeyPairSet{}, fmt.Errorf("merchant signing key: %w", err)
	}
	if set.PacoEncryptionKey, err = LoadPublicKey(keys.PacoEncryptionPublicKey); err != nil {
		return value_objects.KeyPairSet{}, fmt.Errorf("paco encryption key: %w", err)
	}
	if set.MerchantDecryptionKey, err = LoadPrivateKey(keys.MerchantDecryptionPrivateKey); err != nil {
		return value_objects.KeyPairSet{}, fmt.Errorf("merchant decryption key: %w", err)
	}
	if set.PacoSigningKey, err = LoadPublicKey(keys.PacoSigningPublicKey); err != nil {
		return value_objects.KeyPairSet{}, fmt.Errorf("paco signing key: %w", err)
	}

	return set, nil
}
