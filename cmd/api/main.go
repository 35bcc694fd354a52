package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"campusbazaar/internal/adapter/api"
	"campusbazaar/internal/adapter/api/handler"
	apimiddleware "campusbazaar/internal/adapter/api/middleware"
	"campusbazaar/internal/adapter/api/router"
	"campusbazaar/internal/adapter/repository"
	"campusbazaar/internal/infrastructure/firebase"
	"campusbazaar/internal/infrastructure/storage"
	"campusbazaar/internal/infrastructure/websocket"
	"campusbazaar/internal/usecase"
	"campusbazaar/pkg/config"
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
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
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

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, cfg)
	productUseCase := usecase.NewProductUseCase(productRepo, storageClient)
	interestUseCase := usecase.NewInterestUseCase(productRepo, userRepo, notificationRepo, wsManager)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, userRepo, productRepo, wsManager)
	adminUseCase := usecase.NewAdminUseCase(userRepo, productRepo, firebaseAuthClient, storageClient)

	// Socket messages flow through the same use case as the REST surface.
	wsManager.SetRelay(chatUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
	}))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase),
		Product:   handler.NewProductHandler(productUseCase),
		Interest:  handler.NewInterestHandler(interestUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		Admin:     handler.NewAdminHandler(adminUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager, authMiddleware),
		Health:    handler.NewHealthHandler(),
	}, router.Middlewares{
		Auth:      authMiddleware,
		Admin:     adminMiddleware,
		APILimit:  apimiddleware.NewIPRateLimiter(cfg.ApiRateLimitMax, time.Minute),
		AuthLimit: apimiddleware.NewIPRateLimiter(cfg.LoginRateLimitMax, time.Minute),
	})

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
