package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/serenica/retreat-backoffice/config"
	"github.com/serenica/retreat-backoffice/internal/handler"
	"github.com/serenica/retreat-backoffice/internal/middleware"
	"github.com/serenica/retreat-backoffice/internal/pms"
	"github.com/serenica/retreat-backoffice/internal/repository"
	"github.com/serenica/retreat-backoffice/internal/service"
	"github.com/serenica/retreat-backoffice/pkg/database"
	"github.com/serenica/retreat-backoffice/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: booking lifecycle events for downstream consumers
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, lifecycle events disabled")
	}

	// Repositories
	retreatRepo := repository.NewRetreatRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	// Services
	retreatSvc := service.NewRetreatService(retreatRepo, publisher)
	bookingSvc := service.NewBookingService(bookingRepo, retreatRepo, guestRepo, publisher)
	waitlistSvc := service.NewWaitlistService(bookingRepo, retreatRepo, guestRepo, publisher)
	financeSvc := service.NewFinanceService(txnRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "retreat-backoffice"})
	})

	handler.NewRetreatHandler(retreatSvc, waitlistSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewWaitlistHandler(waitlistSvc).RegisterRoutes(e)
	handler.NewFinanceHandler(financeSvc).RegisterRoutes(e)

	if cfg.PMSBaseURL != "" {
		pmsClient := pms.NewClient(cfg.PMSBaseURL, cfg.PMSAuthCode, cfg.PMSHotelCode)
		handler.NewPMSHandler(pmsClient).RegisterRoutes(e)
	}

	log.Printf("Retreat back-office starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
