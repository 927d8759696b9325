package firebase

import (
	"context"
)

// GenerateLongLivedToken mints a token for local API exploration. With an API
// key configured the custom token is exchanged for a real ID token so the
// auth middleware accepts it; without one the raw custom token is returned
// and only works against the emulator. Served from the /_dev routes, which
// are never registered outside development.
func (f *FirebaseAuthClient) GenerateLongLivedToken(ctx context.Context, uid string) (string, error) {
	customToken, err := f.GenerateToken(ctx, uid)
	if err != nil {
		return "", err
	}

	if f.apiKey == "" {
		return customToken, nil
	}

	return f.exchangeCustomTokenForIDToken(customToken)
}
