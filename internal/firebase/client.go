package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// NewFirestore creates a Firestore client through a Firebase app. An empty
// credentialsFile falls back to Application Default Credentials; the
// FIRESTORE_EMULATOR_HOST variable is honoured by the underlying client.
func NewFirestore(ctx context.Context, projectID, credentialsFile string, logger *zap.Logger) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	logger.Info("firestore connected", zap.String("project_id", projectID))
	return client, nil
}
