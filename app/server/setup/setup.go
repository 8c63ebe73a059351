package setup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"article-planner/app/server/db"
	"article-planner/app/server/model"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

const ShutdownGracePeriod = 15 * time.Second

// MustLoadEnv reads .env if there is one. Real environment variables win.
func MustLoadEnv() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatal("Error loading .env file: ", err)
	}
}

func InitLogging() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		return
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
	})
}

func MustInitDb() {
	err := db.Connect()
	if err != nil {
		log.Fatal("Error initializing database: ", err)
	}

	err = db.MigrationsUp()
	if err != nil {
		log.Fatal("Error running migrations: ", err)
	}
}

func MustInitClients() {
	cfg, err := model.ConfigFromEnv()
	if err != nil {
		log.Fatal("Error loading model config: ", err)
	}

	model.InitClients(cfg)
}

// StartServer serves r until SIGTERM or SIGINT, then shuts down gracefully.
func StartServer(r *mux.Router) {
	if os.Getenv("GOENV") == "development" {
		log.Println("In development mode.")
	}

	// Get externalPort from the environment variable or default to 8088
	externalPort := os.Getenv("PORT")
	if externalPort == "" {
		externalPort = "8088"
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", externalPort),
		Handler: r,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server on port %s: %v", externalPort, err)
		}
	}()
	log.Println("Started server on port " + externalPort)

	sigTermChan := make(chan os.Signal, 1)
	signal.Notify(sigTermChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigTermChan
	log.Printf("Received %s, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownGracePeriod)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	err = db.Close()
	if err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server stopped")
}
