// Package jwks fetches and caches the identity provider's published
// signing keys. The JWKS URL comes either from explicit configuration
// or from the provider's OIDC discovery document, resolved once at
// startup.
package jwks

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/deepview/deepview-mcp/internal/auth/autherr"
)

// discoveryDocument is the subset of the OIDC discovery response we need.
type discoveryDocument struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

// Set represents a JSON Web Key Set.
type Set struct {
	Keys []Key `json:"keys"`
}

// Key represents a single JSON Web Key.
type Key struct {
	KeyType   string `json:"kty"`
	Use       string `json:"use,omitempty"`
	KeyID     string `json:"kid"`
	Algorithm string `json:"alg,omitempty"`
	// RSA parameters
	N string `json:"n,omitempty"`
	E string `json:"e,omitempty"`
	// EC parameters
	Curve string `json:"crv,omitempty"`
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
}

// Discover fetches <issuer>/.well-known/openid-configuration and returns
// the advertised jwks_uri. Callers treat a failure here as fatal to
// startup rather than a per-request condition.
func Discover(ctx context.Context, issuer string) (string, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	discoveryURL := issuer + "/.well-known/openid-configuration"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return "", autherr.NewDiscoveryError("Discover", issuer, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", autherr.NewDiscoveryError("Discover", issuer, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", autherr.NewDiscoveryError("Discover", issuer,
			fmt.Errorf("discovery endpoint returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", autherr.NewDiscoveryError("Discover", issuer, err)
	}

	var doc discoveryDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", autherr.NewDiscoveryError("Discover", issuer, err)
	}

	if doc.JWKSURI == "" {
		return "", autherr.NewDiscoveryError("Discover", issuer,
			fmt.Errorf("discovery document missing jwks_uri field"))
	}

	return doc.JWKSURI, nil
}

// Client resolves verification keys by key ID, reading through an
// in-process cache to the provider's JWKS endpoint.
type Client struct {
	httpClient *http.Client
	jwksURL    string
	cache      *Cache
}

// NewClient creates a JWKS client for the given resolved JWKS URL.
func NewClient(jwksURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		jwksURL:    jwksURL,
		cache:      NewCache(),
	}
}

// Key returns the verification key for keyID. A cache miss triggers one
// fetch of the full key set, which also primes the cache for sibling
// keys; this is how key rotation is picked up.
func (c *Client) Key(ctx context.Context, keyID string) (any, error) {
	if keyID == "" {
		return nil, autherr.NewKeyNotFoundError("Key", keyID)
	}

	if key := c.cache.Get(keyID); key != nil {
		return key, nil
	}

	set, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var found any
	for i := range set.Keys {
		jwk := &set.Keys[i]
		if jwk.KeyID == "" {
			continue
		}
		key, err := jwkToPublicKey(jwk)
		if err != nil {
			// Skip keys we cannot decode.
			continue
		}
		c.cache.Set(jwk.KeyID, key)
		if jwk.KeyID == keyID {
			found = key
		}
	}

	if found == nil {
		return nil, autherr.NewKeyNotFoundError("Key", keyID)
	}
	return found, nil
}

func (c *Client) fetch(ctx context.Context) (*Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, nil)
	if err != nil {
		return nil, autherr.NewJWKSFetchError("fetch", c.jwksURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, autherr.NewJWKSFetchError("fetch", c.jwksURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, autherr.NewJWKSFetchError("fetch", c.jwksURL,
			fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, autherr.NewJWKSFetchError("fetch", c.jwksURL, err)
	}

	var set Set
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, autherr.NewJWKSFetchError("fetch", c.jwksURL, err)
	}

	return &set, nil
}

// jwkToPublicKey converts a JWK into a crypto public key usable for
// signature verification.
func jwkToPublicKey(jwk *Key) (any, error) {
	switch jwk.KeyType {
	case "RSA":
		return jwkToRSAPublicKey(jwk)
	case "EC":
		return jwkToECDSAPublicKey(jwk)
	default:
		return nil, fmt.Errorf("unsupported key type: %s", jwk.KeyType)
	}
}

func jwkToRSAPublicKey(jwk *Key) (*rsa.PublicKey, error) {
	if jwk.N == "" || jwk.E == "" {
		return nil, fmt.Errorf("missing RSA key parameters")
	}

	nBytes, err := base64URLDecode(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := base64URLDecode(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

func jwkToECDSAPublicKey(jwk *Key) (*ecdsa.PublicKey, error) {
	if jwk.X == "" || jwk.Y == "" || jwk.Curve == "" {
		return nil, fmt.Errorf("missing EC key parameters")
	}

	xBytes, err := base64URLDecode(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode x coordinate: %w", err)
	}
	yBytes, err := base64URLDecode(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode y coordinate: %w", err)
	}

	curve, err := curveByName(jwk.Curve)
	if err != nil {
		return nil, err
	}

	return &ecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}, nil
}
