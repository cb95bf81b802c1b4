package db

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/apex/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound marks lookups for documents that do not exist.
var ErrNotFound = errors.New("db: not found")

// IsNotFound reports whether err is a missing-document error, either our own
// sentinel or the Firestore NotFound status from a direct document get.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || status.Code(err) == codes.NotFound
}

// Collection names. All derived-state readers and writers go through these.
const (
	ReportsCollection  = "reports"
	WardsCollection    = "wards"
	UsersCollection    = "users"
	TrucksCollection   = "trucks"
	PoliciesCollection = "policy_recommendations"
)

var (
	client     *firestore.Client
	clientOnce sync.Once
)

// InitFirestore initializes and returns a singleton Firestore client.
func InitFirestore() (*firestore.Client, error) {
	var err error

	clientOnce.Do(func() {
		encodedCreds := os.Getenv("FIREBASE_CREDENTIALS")
		creds, decodeErr := base64.StdEncoding.DecodeString(encodedCreds)
		if decodeErr != nil {
			log.Fatalf("Failed to decode Firestore credentials: %v", decodeErr)
		}

		opt := option.WithCredentialsJSON(creds)
		app, appErr := firebase.NewApp(context.Background(), nil, opt)
		if appErr != nil {
			log.Fatalf("Error initializing Firebase app: %v", appErr)
		}

		client, err = app.Firestore(context.Background())
		if err != nil {
			log.Fatalf("Error getting Firestore client: %v", err)
		}
	})

	return client, err
}

// CloseFirestore closes the singleton client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
