package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"griyapasar/internal/adapter/api"
	"griyapasar/internal/adapter/api/handler"
	apimiddleware "griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/adapter/api/router"
	"griyapasar/internal/adapter/repository"
	"griyapasar/internal/infrastructure/firebase"
	"griyapasar/internal/infrastructure/ratelimit"
	"griyapasar/internal/infrastructure/storage"
	"griyapasar/internal/infrastructure/websocket"
	"griyapasar/internal/livequery"
	"griyapasar/internal/usecase"
	"griyapasar/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	store := livequery.NewStore(firestoreClient)
	liveManager := livequery.NewManager(store)

	storagePath := ""
	if serviceAccountJSON == "" {
		storagePath = serviceAccountPath
	}
	storageClient, err := storage.NewCloudStorageClient(
		ctx,
		cfg.StorageBucket,
		cfg.FirebaseProject,
		storagePath,
		cfg.MaxImageSize,
		cfg.MaxDocumentSize,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	tokenVerifier, err := firebase.NewTokenVerifier(cfg.FirebaseProject)
	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}
	defer tokenVerifier.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	providerRepo := repository.NewFirestoreProviderRepository(firestoreClient, store)
	propertyRepo := repository.NewFirestorePropertyRepository(firestoreClient, store)
	projectRepo := repository.NewFirestoreProjectRepository(firestoreClient, store)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient, store)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	newResolver := usecase.EntityResolverFactory(userRepo, propertyRepo, providerRepo)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, propertyRepo, firebaseAuthClient)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, liveManager, wsManager)
	providerUseCase := usecase.NewProviderUseCase(providerRepo, userRepo, notificationUseCase)
	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo, newResolver)
	projectUseCase := usecase.NewProjectUseCase(projectRepo, providerRepo, propertyRepo, newResolver, notificationUseCase)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, newResolver, notificationUseCase, wsManager)

	handler.Setup(authUseCase, userUseCase, providerUseCase, propertyUseCase, projectUseCase, notificationUseCase, chatUseCase)
	handler.SetupFileHandler(storageClient, fileMetadataRepo)
	handler.SetupHealthHandler(firebaseAuthClient)
	handler.SetupDevTokenHandler(firebaseAuthClient, userRepo)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient, userRepo)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	wsHandler := handler.NewWebSocketHandler(wsManager, tokenVerifier, notificationUseCase)

	router.Setup(e, authMiddleware, adminMiddleware, limiter)
	router.SetupFileRouter(e, authMiddleware, limiter)
	router.SetupWebSocketRouter(e, wsHandler)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
