package jwks

import (
	"crypto/elliptic"
	"encoding/base64"
	"fmt"
)

// base64URLDecode decodes a base64url-encoded string, tolerating both
// padded and unpadded inputs.
func base64URLDecode(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

// curveByName maps a JWK curve name to a crypto/elliptic curve.
func curveByName(name string) (elliptic.Curve, error) {
	switch name {
	case "P-256":
		return elliptic.P256(), nil
	case "P-384":
		return elliptic.P384(), nil
	case "P-521":
		return elliptic.P521(), nil
	default:
		return nil, fmt.Errorf("unsupported curve: %s", name)
	}
}
