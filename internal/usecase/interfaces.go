package usecase

import (
	"context"
	"io"
)

// FirebaseAuthClient is the slice of the Firebase auth surface the use cases
// need. Kept as an interface so tests can stub the network away.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (idToken, refreshToken, uid string, err error)
	RefreshIdToken(ctx context.Context, refreshToken string) (idToken, newRefreshToken string, err error)
}

// RealtimePusher delivers server events to a user's live connections. The
// websocket manager satisfies it; delivery is best-effort.
type RealtimePusher interface {
	EmitToUser(userID string, event string, data interface{})
}

// ImageStore uploads and deletes user-visible images.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (objectName, publicURL string, err error)
	DeleteImage(ctx context.Context, objectName string) error
}
