package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/nateekarni/dsu-intensive-global/internal/auth"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/file"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/notification"
	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/messaging"
)

// MyServer holds the shared dependencies of every route handler
type MyServer struct {
	DB        *database.DBinstanceStruct
	Bus       *messaging.Bus
	Blacklist auth.JwtBlacklistStore
	Storage   file.StorageClient
}

// NewServer construct new Server instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	var storage file.StorageClient
	if bucket := os.Getenv("STORAGE_BUCKET_NAME"); bucket != "" {
		cloudStorage, err := file.NewCloudStorageClient(bucket)
		if err != nil {
			log.Fatalf("Cloud storage failed to initialized: %s", err)
		}
		storage = cloudStorage
	} else {
		log.Println("STORAGE_BUCKET_NAME not set, storing file contents in the database")
	}

	bus := messaging.NewBus()
	bus.Subscribe(notification.StageChangeSubscriber(db))

	s := &MyServer{
		DB:        db,
		Bus:       bus,
		Blacklist: auth.NewInMemoryBlacklistStore(),
		Storage:   storage,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
