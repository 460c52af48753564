package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"client_portal/internal/api"
	"client_portal/internal/app/service"
	"client_portal/internal/app/worker"
	"client_portal/internal/common/security"
	"client_portal/internal/domain/repository"
	"client_portal/internal/platform/config"
	"client_portal/internal/platform/database"
	"client_portal/internal/platform/email"
	"client_portal/internal/platform/queue"
)

func main() {
	// 1. Configuration and session signing
	config.Load()
	security.InitSessionAuth()
	log.Println("Configuration loaded.")

	// 2. Database cluster (primary + replica pools)
	cluster, err := database.Connect(config.AppConfig)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer cluster.Close()
	log.Println("Database cluster connected.")

	// 3. Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()

	// 4. Repositories
	userRepo := repository.NewPgUserRepository(cluster)
	sessionRepo := repository.NewPgSessionRepository(cluster)
	appointmentRepo := repository.NewPgAppointmentRepository(cluster)
	requestRepo := repository.NewPgServiceRequestRepository(cluster)
	invoiceRepo := repository.NewPgInvoiceRepository(cluster)
	contactRepo := repository.NewPgContactRepository(cluster)

	// 5. Services
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	authService, err := service.NewAuthService(startupCtx, config.AppConfig, userRepo, sessionRepo)
	startupCancel()
	if err != nil {
		log.Fatalf("Could not initialize auth service: %v", err)
	}

	leadPublisher := service.NewRedisLeadPublisher(queue.RDB, config.AppConfig.LeadQueueName)
	appointmentService := service.NewAppointmentService(appointmentRepo)
	requestService := service.NewServiceRequestService(requestRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	contactService := service.NewContactService(contactRepo, leadPublisher)
	adminService := service.NewAdminService(userRepo, appointmentService, requestService, invoiceService, contactService)

	// 6. Background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	leadWorker := worker.NewLeadWorker(queue.RDB, config.AppConfig.LeadQueueName, contactRepo, email.NewSender(config.AppConfig))
	go leadWorker.Start(workerCtx)

	reaper := worker.NewSessionReaper(sessionRepo, time.Hour)
	go reaper.Start(workerCtx)

	// 7. Router & HTTP server
	router := api.NewRouter(
		config.AppConfig, queue.RDB, cluster,
		authService, appointmentService, requestService,
		invoiceService, contactService, adminService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}

	log.Println("Server and workers stopped gracefully.")
}
