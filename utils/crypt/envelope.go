package crypt

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	"hbl-card-payment/domain/constants"
	entities "hbl-card-payment/domain/entities/paco_gateway"
	gwErrors "hbl-card-payment/utils/errors"
)

// The only JWE algorithms an envelope may use.
var (
	keyAlgorithms     = []jose.KeyAlgorithm{jose.RSA_OAEP}
	contentEncryption = []jose.ContentEncryption{jose.A128CBC_HS256}
)

// Sign serialises claims as a compact PS256 JWS with typ "JWT".
func Sign(claims jwt.Claims, key *rsa.PrivateKey) (string, error) {
	if key == nil {
		return "", fmt.Errorf("%w: no signing key", gwErrors.ErrKeyFormat)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodPS256, claims)
	token.Header["typ"] = constants.PacoTokenType

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", gwErrors.ErrEnvelope, err)
	}
	return signed, nil
}

// Encrypt wraps a signed token in a compact RSA-OAEP / A128CBC-HS256 JWE
// carrying kid and cty "JWT" in its protected header.
func Encrypt(token string, key *rsa.PublicKey, keyID string) (string, error) {
	if key == nil {
		return "", fmt.Errorf("%w: no encryption key", gwErrors.ErrKeyFormat)
	}

	encrypter, err := jose.NewEncrypter(
		jose.A128CBC_HS256,
		jose.Recipient{Algorithm: jose.RSA_OAEP, Key: key, KeyID: keyID},
		(&jose.EncrypterOptions{}).WithContentType(jose.ContentType(constants.PacoTokenType)),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", gwErrors.ErrEnvelope, err)
	}

	object, err := encrypter.Encrypt([]byte(token))
	if err != nil {
		return "", fmt.Errorf("%w: %v", gwErrors.ErrEnvelope, err)
	}

	envelope, err := object.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("%w: %v", gwErrors.ErrEnvelope, err)
	}
	return envelope, nil
}

// Decrypt opens a compact JWE and returns the token inside. Any malformed
// segment, wrong key or failed authentication tag yields ErrDecryption.
func Decrypt(envelope string, key *rsa.PrivateKey) (string, error) {
	if key == nil {
		return "", fmt.Errorf("%w: no decryption key", gwErrors.ErrKeyFormat)
	}

	envelope = strings.TrimSpace(envelope)
	if err := checkCompact(envelope); err != nil {
		return "", fmt.Errorf("%w: %v", gwErrors.ErrDecryption, err)
	}

	object, err := jose.ParseEncrypted(envelope, keyAlgorithms, contentEncryption)
	if err != nil {
		return "", fmt.Errorf("%w: %v", gwErrors.ErrDecryption, err)
	}

	plaintext, err := object.Decrypt(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", gwErrors.ErrDecryption, err)
	}
	return string(plaintext), nil
}

// checkCompact requires five segments of canonical unpadded base64url, so a
// flipped character can never decode to the same bytes.
func checkCompact(envelope string) error {
	parts := strings.Split(envelope, ".")
	if len(parts) != 5 {
		return fmt.Errorf("compact JWE has %d segments, want 5", len(parts))
	}
	for i, part := range parts {
		if _, err := base64.RawURLEncoding.Strict().DecodeString(part); err != nil {
			return fmt.Errorf("segment %d is not base64url", i)
		}
	}
	return nil
}

// Verify checks a PS256 token against key and validates exp (required, in the
// future), nbf, iss and aud, which must hold audience as its only value.
func Verify(token string, key *rsa.PublicKey, audience, issuer string) (*entities.PaymentClaims, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: no verification key", gwErrors.ErrKeyFormat)
	}

	claims := &entities.PaymentClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodPS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifyTokenError(err), err)
	}
	// aud must name this client alone, not merely include it.
	if len(claims.Audience) != 1 {
		return nil, fmt.Errorf("%w: %v: audience has %d values", gwErrors.ErrClaimValidation, jwt.ErrTokenInvalidAudience, len(claims.Audience))
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	for _, claimErr := range []error{
		jwt.ErrTokenInvalidClaims,
		jwt.ErrTokenExpired,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenInvalidAudience,
		jwt.ErrTokenInvalidIssuer,
		jwt.ErrTokenRequiredClaimMissing,
	} {
		if errors.Is(err, claimErr) {
			return gwErrors.ErrClaimValidation
		}
	}
	return gwErrors.ErrSignature
}

// Seal signs claims and encrypts the result for the recipient.
func Seal(claims jwt.Claims, signingKey *rsa.PrivateKey, encryptionKey *rsa.PublicKey, keyID string) (string, error) {
	token, err := Sign(claims, signingKey)
	if err != nil {
		return "", gwErrors.Wrap(gwErrors.PhaseSign, gwErrors.ErrEnvelope, err)
	}

	envelope, err := Encrypt(token, encryptionKey, keyID)
	if err != nil {
		return "", gwErrors.Wrap(gwErrors.PhaseEncrypt, gwErrors.ErrEnvelope, err)
	}
	return envelope, nil
}

// Open decrypts an envelope and verifies the token inside, in that order.
func Open(envelope string, decryptionKey *rsa.PrivateKey, verificationKey *rsa.PublicKey, audience, issuer string) (*entities.PaymentClaims, error) {
	token, err := Decrypt(envelope, decryptionKey)
	if err != nil {
		return nil, gwErrors.Wrap(gwErrors.PhaseDecrypt, gwErrors.ErrDecryption, err)
	}

	claims, err := Verify(token, verificationKey, audience, issuer)
	if err != nil {
		return nil, gwErrors.Wrap(gwErrors.PhaseVerify, gwErrors.ErrSignature, err)
	}
	return claims, nil
}
