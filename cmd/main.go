package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sandeepvarma05/event-planner-backend/config"
	"github.com/sandeepvarma05/event-planner-backend/database"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/internal/auth"
	"github.com/sandeepvarma05/event-planner-backend/internal/budget"
	"github.com/sandeepvarma05/event-planner-backend/internal/event"
	"github.com/sandeepvarma05/event-planner-backend/internal/function"
	"github.com/sandeepvarma05/event-planner-backend/internal/guest"
	"github.com/sandeepvarma05/event-planner-backend/internal/member"
	"github.com/sandeepvarma05/event-planner-backend/internal/notification"
	"github.com/sandeepvarma05/event-planner-backend/internal/seating"
	"github.com/sandeepvarma05/event-planner-backend/routes"
	"github.com/sandeepvarma05/event-planner-backend/utils"
)

// @title Event Planner API
// @version 1.0
// @description Backend for the event-planning app: guests, invites, seating, budget, and team management.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Redis backs the rate limiter and invite-code cache; start without
	// it if unreachable.
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis init failed, continuing without cache: %v", err)
	}

	utils.InitializeKafka()

	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized")
	}

	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&auth.User{},
		&event.Event{},
		&guest.Guest{},
		&guest.PartyMember{},
		&function.EventFunction{},
		&function.FunctionInvite{},
		&seating.SeatingTable{},
		&seating.SeatingAssignment{},
		&budget.Budget{},
		&budget.BudgetCategory{},
		&budget.Expense{},
		&budget.PaymentSplit{},
		&member.EventMember{},
		&notification.InAppNotification{},
		&notification.FCMDeviceToken{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	services := routes.Setup(router, cfg)

	// RSVP trigger consumer: turns published RSVPs into bell entries and
	// pushes for the event team.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go notification.StartKafkaConsumer(ctx, services.Notification)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
