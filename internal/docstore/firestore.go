package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore is the production Store, keeping each collection as a
// Firestore document keyed by account ID.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestore connects to Firestore for the given project. When
// credentialsFile is empty, application default credentials are used.
func NewFirestore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) Get(ctx context.Context, kind Kind, accountID string, out any) error {
	snap, err := s.client.Collection(string(kind)).Doc(accountID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get %s document: %w", kind, err)
	}
	return decodeDocument(snap.Data(), out)
}

func (s *FirestoreStore) Set(ctx context.Context, kind Kind, accountID string, value any) error {
	fields, err := encodeDocument(value)
	if err != nil {
		return err
	}
	if _, err := s.client.Collection(string(kind)).Doc(accountID).Set(ctx, fields); err != nil {
		return fmt.Errorf("failed to set %s document: %w", kind, err)
	}
	return nil
}

func (s *FirestoreStore) Subscribe(ctx context.Context, kind Kind, accountID string, onChange func(data json.RawMessage)) (Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	iter := s.client.Collection(string(kind)).Doc(accountID).Snapshots(ctx)

	go func() {
		for {
			snap, err := iter.Next()
			if err != nil {
				// The snapshot iterator only fails permanently.
				return
			}
			if !snap.Exists() {
				onChange(nil)
				continue
			}
			data, err := json.Marshal(snap.Data())
			if err != nil {
				continue
			}
			onChange(data)
		}
	}()

	return func() {
		cancel()
		iter.Stop()
	}, nil
}

// Firestore stores documents as native field maps; JSON is the bridge to the
// typed models, which all carry json tags.
func encodeDocument(value any) (map[string]any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to convert document to fields: %w", err)
	}
	return fields, nil
}

func decodeDocument(fields map[string]any, out any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal document fields: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return nil
}
