package usecase

import "context"

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error)
	RefreshIdToken(refreshToken string) (string, string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	IsEmailVerified(ctx context.Context, uid string) (bool, error)
}

// Pusher delivers a payload to a connected user, if any. The websocket
// manager implements it.
type Pusher interface {
	SendToUser(userID string, payload []byte)
}
