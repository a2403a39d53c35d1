package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp    *firebase.App
	FirebaseClient *messaging.Client
	once           sync.Once
	initErr        error
)

// InitFirebase initializes the Firebase Admin SDK and FCM client once.
// Push delivery is optional: without credentials the app runs with FCM off.
func InitFirebase() error {
	once.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		projectID := os.Getenv("FCM_PROJECT_ID")

		if credentialsPath == "" {
			initErr = fmt.Errorf("FCM credentials path not configured")
			return
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}
		if projectID == "" {
			initErr = fmt.Errorf("FCM_PROJECT_ID is required for FCM")
			return
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID},
			option.WithCredentialsFile(credentialsPath))
		if err != nil {
			initErr = fmt.Errorf("firebase app initialization failed: %v", err)
			return
		}

		fcmClient, err := app.Messaging(ctx)
		if err != nil {
			FirebaseApp = app
			initErr = fmt.Errorf("FCM client initialization failed: %v", err)
			return
		}

		log.Println("✅ FCM client initialized for project:", projectID)
		FirebaseApp = app
		FirebaseClient = fcmClient
	})

	return initErr
}

// GetFCMClient returns the FCM client instance (nil when disabled).
func GetFCMClient() *messaging.Client {
	return FirebaseClient
}

// IsFCMEnabled checks if FCM is available
func IsFCMEnabled() bool {
	return FirebaseClient != nil
}

// GetInitError returns the initialization error if any
func GetInitError() error {
	return initErr
}
