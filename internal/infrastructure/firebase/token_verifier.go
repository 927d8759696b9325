package firebase

import (
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

const googleJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken%40system.gserviceaccount.com"

// TokenVerifier validates Firebase ID tokens locally against Google's
// published signing keys. The websocket upgrade path uses it instead of the
// Admin SDK roundtrip: the handshake happens on every reconnect and must not
// pay a network call per connection.
type TokenVerifier struct {
	jwks      *keyfunc.JWKS
	projectID string
}

func NewTokenVerifier(projectID string) (*TokenVerifier, error) {
	jwks, err := keyfunc.Get(googleJWKSURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load signing keys: %w", err)
	}
	return &TokenVerifier{jwks: jwks, projectID: projectID}, nil
}

// Verify checks signature, expiry, issuer and audience, and returns the UID.
func (v *TokenVerifier) Verify(idToken string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if !claims.VerifyAudience(v.projectID, true) {
		return "", fmt.Errorf("wrong audience")
	}
	if !claims.VerifyIssuer("https://securetoken.google.com/"+v.projectID, true) {
		return "", fmt.Errorf("wrong issuer")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

func (v *TokenVerifier) Close() {
	v.jwks.EndBackground()
}
