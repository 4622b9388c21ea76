package firebase

import (
	"context"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app
type App struct {
	FirebaseApp *firebase.App
	bucket      string
}

// InitFirebase initializes the Firebase application. bucket may be empty when storage is not used.
func InitFirebase(ctx context.Context, credentialsPath, bucket string) (*App, error) {
	if credentialsPath == "" {
		return nil, errors.New("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, errors.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	var cfg *firebase.Config
	if bucket != "" {
		cfg = &firebase.Config{StorageBucket: bucket}
	}

	app, err := firebase.NewApp(ctx, cfg, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "error initializing firebase app")
	}

	logrus.Info("firebase app initialized")
	return &App{FirebaseApp: app, bucket: bucket}, nil
}

// Auth returns the ID token verifier
func (a *App) Auth(ctx context.Context) (*auth.Client, error) {
	client, err := a.FirebaseApp.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error getting firebase auth client")
	}
	return client, nil
}

// Bucket returns the configured storage bucket and its name
func (a *App) Bucket(ctx context.Context) (*gcs.BucketHandle, string, error) {
	client, err := a.FirebaseApp.Storage(ctx)
	if err != nil {
		return nil, "", errors.Wrap(err, "error getting firebase storage client")
	}
	bucket, err := client.Bucket(a.bucket)
	if err != nil {
		return nil, "", errors.Wrapf(err, "error opening bucket %s", a.bucket)
	}
	return bucket, a.bucket, nil
}
