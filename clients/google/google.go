// Package google implements the OAuth/OIDC client for Google sign-in:
// authorization URL construction, code exchange, and id_token
// verification against Google's published JWKS.
package google

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const discoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

type discoveryDoc struct {
	Issuer        string `json:"issuer"`
	AuthEndpoint  string `json:"authorization_endpoint"`
	TokenEndpoint string `json:"token_endpoint"`
	JWKSURI       string `json:"jwks_uri"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

// Profile is the subset of id_token claims the provisioning workflow consumes.
type Profile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// OAuthClient talks to Google's OIDC endpoints. Discovery and JWKS
// responses are cached with a TTL to keep callbacks off the network
// where possible.
type OAuthClient struct {
	clientID     string
	clientSecret string
	redirectURL  string

	httpClient *http.Client

	mu          sync.RWMutex
	disc        *discoveryDoc
	discFetched time.Time
	keys        *jwks
	keysFetched time.Time
}

func NewOAuthClient(clientID, clientSecret, redirectURL string) *OAuthClient {
	return &OAuthClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL builds the authorization redirect for the profile+email scopes.
func (c *OAuthClient) AuthURL(ctx context.Context, state string) (string, error) {
	disc, err := c.discovery(ctx)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(disc.AuthEndpoint)
	if err != nil {
		return "", fmt.Errorf("invalid authorization endpoint: %w", err)
	}
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURL)
	q.Set("scope", "openid profile email")
	q.Set("state", state)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Exchange trades an authorization code for tokens and returns the
// verified id_token profile.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*Profile, error) {
	disc, err := c.discovery(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, disc.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var body struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("token exchange http %d: %s %s", resp.StatusCode, body.Error, body.ErrorDescription)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokens.IDToken == "" {
		return nil, fmt.Errorf("token response contained no id_token")
	}

	return c.verifyIDToken(ctx, tokens.IDToken, disc.Issuer)
}

// verifyIDToken validates signature, issuer and audience, then extracts
// the profile claims.
func (c *OAuthClient) verifyIDToken(ctx context.Context, idToken, issuer string) (*Profile, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(
		idToken,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			kid, _ := token.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("id_token has no kid header")
			}
			return c.rsaKeyForKid(ctx, kid)
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(c.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("id_token verification failed: %w", err)
	}

	profile := &Profile{}
	profile.Sub, _ = claims["sub"].(string)
	profile.Email, _ = claims["email"].(string)
	profile.EmailVerified, _ = claims["email_verified"].(bool)
	profile.Name, _ = claims["name"].(string)
	profile.Picture, _ = claims["picture"].(string)

	if profile.Sub == "" {
		return nil, fmt.Errorf("id_token has no subject")
	}
	return profile, nil
}

func (c *OAuthClient) discovery(ctx context.Context) (*discoveryDoc, error) {
	c.mu.RLock()
	disc := c.disc
	stale := time.Since(c.discFetched) > 24*time.Hour
	c.mu.RUnlock()
	if disc != nil && !stale {
		return disc, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var doc discoveryDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode discovery document: %w", err)
	}

	c.mu.Lock()
	c.disc = &doc
	c.discFetched = time.Now()
	c.mu.Unlock()
	return &doc, nil
}

func (c *OAuthClient) rsaKeyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	keys, err := c.getJWKS(ctx)
	if err != nil {
		return nil, err
	}

	for _, key := range keys.Keys {
		if key.Kid != kid || !strings.EqualFold(key.Kty, "RSA") {
			continue
		}
		nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			return nil, err
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			return nil, err
		}
		e := 0
		for _, b := range eBytes {
			e = (e << 8) | int(b)
		}
		if e == 0 {
			e = 65537
		}
		return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
	}
	return nil, fmt.Errorf("no JWKS key matches kid %q", kid)
}

func (c *OAuthClient) getJWKS(ctx context.Context) (*jwks, error) {
	c.mu.RLock()
	keys := c.keys
	age := time.Since(c.keysFetched)
	c.mu.RUnlock()
	if keys != nil && age < time.Hour {
		return keys, nil
	}

	disc, err := c.discovery(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, disc.JWKSURI, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jwks fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("jwks http %d", resp.StatusCode)
	}

	var fetched jwks
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		return nil, fmt.Errorf("failed to decode jwks: %w", err)
	}

	c.mu.Lock()
	c.keys = &fetched
	c.keysFetched = time.Now()
	c.mu.Unlock()
	return &fetched, nil
}
