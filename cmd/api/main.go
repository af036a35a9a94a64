package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"sproutswap/internal/adapter/api"
	"sproutswap/internal/adapter/api/handler"
	apimiddleware "sproutswap/internal/adapter/api/middleware"
	"sproutswap/internal/adapter/api/router"
	"sproutswap/internal/adapter/repository"
	"sproutswap/internal/infrastructure/firebase"
	"sproutswap/internal/infrastructure/mailer"
	"sproutswap/internal/infrastructure/ratelimit"
	"sproutswap/internal/infrastructure/storage"
	"sproutswap/internal/infrastructure/websocket"
	"sproutswap/internal/usecase"
	"sproutswap/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	credentialsPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
		credentialsPath = ""
	} else if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	exchangeRepo := repository.NewFirestoreExchangeRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	archiveRepo := repository.NewFirestoreArchiveRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)
	smtpMailer := mailer.NewSMTPMailer(cfg)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, wsManager)
	reputationUseCase := usecase.NewReputationUseCase(exchangeRepo, userRepo)
	exchangeUseCase := usecase.NewExchangeUseCase(exchangeRepo, chatRepo, productRepo, notificationUseCase, reputationUseCase)
	chatUseCase := usecase.NewChatUseCase(chatRepo, notificationUseCase, firebaseAuthClient, smtpMailer)
	accountUseCase := usecase.NewAccountUseCase(userRepo, productRepo, exchangeRepo, notificationRepo, archiveRepo, storageClient, firebaseAuthClient, notificationUseCase)
	contactUseCase := usecase.NewContactUseCase(smtpMailer, cfg.ContactRecipient)

	handler.Setup(exchangeUseCase, chatUseCase, notificationUseCase, accountUseCase, contactUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(rateLimiter)

	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authMiddleware, rateLimitMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
