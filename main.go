package main

import (
	"aihub-backend/controller"
	"aihub-backend/dal"
	"aihub-backend/models"
	"aihub-backend/repository"
	"aihub-backend/services"
	"aihub-backend/utils"
	"aihub-backend/utils/logger"
	"aihub-backend/worker"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title AI Hub Backend API
// @version 1.0
// @description Lead capture, demo booking and AI bot management for the AI Hub website.
// @description
// @description Public endpoints (contact form, demo booking, availability, bot chat and feedback, activity logging)
// @description need no token. When admin auth is enabled, obtain a token from **POST /auth/login**
// @description with the admin credentials and send it as `Bearer <token>` on every other endpoint.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT. Enter 'Bearer' [space] and then your token.
func main() {
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given admin password and exit")
	flag.Parse()
	if *hashPassword != "" {
		hash, err := utils.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	Init()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Debugf("Config loaded ::\n%s", utils.PrintPrettyJSON(map[string]interface{}{
		"app":         config.AppName,
		"env":         config.AppEnv,
		"address":     net.JoinHostPort(config.AppHost, config.AppPort),
		"basePath":    config.BasePath,
		"authEnabled": config.AuthEnabled,
		"tables":      config.Tables,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dal.NewDynamoDBClient(config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	svc := services.NewService(repository.NewRepository(db, config, appLogger), appLogger, config)
	svc.Start()

	// Reminders run in-process so a manual pass can be triggered over HTTP
	reminderWorker, err := worker.NewWorker(config, db, svc.GetLeadService(), appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create reminder worker: %v", err)
	}
	if err := reminderWorker.Start(); err != nil {
		appLogger.Fatalf("Failed to start reminder worker: %v", err)
	}
	svc.GetInfrastructureService().AttachRunner(reminderWorker)

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	controller.NewController(config, svc, appLogger).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              net.JoinHostPort(config.AppHost, config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("%s %s listening on %s", config.AppName, config.AppVersion, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("HTTP server shutdown failed: %v", err)
	}
	if err := reminderWorker.Stop(); err != nil {
		appLogger.Errorf("Reminder worker stop failed: %v", err)
	}
	svc.Stop()
	appLogger.Info("Shutdown complete")
}
