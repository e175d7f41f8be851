package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/deck-app/deck-account-backend/config"
)

// Firebase holds the process-wide provider clients. It is constructed once
// in main and passed by reference to every gateway; the clients themselves
// are stateless and safe for concurrent use.
type Firebase struct {
	Auth       *auth.Client
	Firestore  *firestore.Client
	Bucket     *gcs.BucketHandle
	BucketName string
}

// InitFirebase initializes the Firebase Admin SDK from the service account
// credentials and returns the Auth, Firestore and Storage clients.
func InitFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*Firebase, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.StorageBucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	fb := &Firebase{
		Auth:      authClient,
		Firestore: firestoreClient,
	}

	if cfg.StorageBucket != "" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Storage client: %w", err)
		}
		bucket, err := storageClient.DefaultBucket()
		if err != nil {
			return nil, fmt.Errorf("failed to get storage bucket: %w", err)
		}
		fb.Bucket = bucket
		fb.BucketName = cfg.StorageBucket
	}

	return fb, nil
}
