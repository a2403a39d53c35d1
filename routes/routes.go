package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeepvarma05/event-planner-backend/config"
	"github.com/sandeepvarma05/event-planner-backend/database"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/internal/auth"
	"github.com/sandeepvarma05/event-planner-backend/internal/budget"
	"github.com/sandeepvarma05/event-planner-backend/internal/event"
	"github.com/sandeepvarma05/event-planner-backend/internal/export"
	"github.com/sandeepvarma05/event-planner-backend/internal/function"
	"github.com/sandeepvarma05/event-planner-backend/internal/guest"
	"github.com/sandeepvarma05/event-planner-backend/internal/member"
	"github.com/sandeepvarma05/event-planner-backend/internal/notification"
	"github.com/sandeepvarma05/event-planner-backend/internal/seating"
	"github.com/sandeepvarma05/event-planner-backend/middleware"

	_ "github.com/sandeepvarma05/event-planner-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services bundles what main needs back out of wiring (the notification
// service feeds the Kafka consumer).
type Services struct {
	Notification notification.Service
}

// Setup wires repositories, services, and handlers onto the router.
func Setup(r *gin.Engine, cfg *config.Config) *Services {
	db := database.DB

	// ===== Repositories =====
	auditRepo := auditlog.NewRepository(db)
	authRepo := auth.NewRepository(db)
	eventRepo := event.NewRepository(db)
	guestRepo := guest.NewRepository(db)
	functionRepo := function.NewRepository(db)
	seatingRepo := seating.NewRepository(db)
	budgetRepo := budget.NewRepository(db)
	memberRepo := member.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	exportRepo := export.NewRepository(db)

	// ===== Services =====
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(authRepo, cfg)
	eventSvc := event.NewService(eventRepo, auditSvc, cfg)
	guestSvc := guest.NewService(guestRepo, auditSvc)
	functionSvc := function.NewService(functionRepo, auditSvc, cfg)
	seatingSvc := seating.NewService(seatingRepo, auditSvc)
	budgetSvc := budget.NewService(budgetRepo, auditSvc)
	memberSvc := member.NewService(memberRepo, auditSvc)
	notificationSvc := notification.NewService(notificationRepo, cfg)
	exportSvc := export.NewService(exportRepo, export.NewExporter(), budgetSvc, auditSvc, cfg)

	// ===== Handlers =====
	authHandler := auth.NewHandler(authSvc)
	eventHandler := event.NewHandler(eventSvc)
	guestHandler := guest.NewHandler(guestSvc)
	functionHandler := function.NewHandler(functionSvc)
	seatingHandler := seating.NewHandler(seatingSvc)
	budgetHandler := budget.NewHandler(budgetSvc)
	memberHandler := member.NewHandler(memberSvc)
	notificationHandler := notification.NewHandler(notificationSvc)
	exportHandler := export.NewHandler(exportSvc)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ===== Health / Docs =====
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuditMiddleware())
	api.Use(middleware.RateLimiter())

	// ===== Public =====
	public := api.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.Refresh)
	}

	// Self-service RSVP resolved from deep links; the guest id is the
	// capability, no login involved.
	rsvp := api.Group("/rsvp")
	{
		rsvp.GET("/:eventId/:guestId", functionHandler.GuestRSVPContext)
		rsvp.POST("/:eventId/:guestId/:functionId", functionHandler.GuestRSVPSubmit)
	}

	// ===== Authenticated =====
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.POST("/events", eventHandler.CreateEvent)
		authed.GET("/events", eventHandler.ListEvents)

		authed.POST("/members/accept", memberHandler.AcceptInvite)

		authed.GET("/notifications", notificationHandler.GetMyInApp)
		authed.POST("/notifications/:notificationId/read", notificationHandler.MarkInAppRead)
		authed.POST("/notifications/devices", notificationHandler.RegisterFCMToken)
		authed.DELETE("/notifications/devices", notificationHandler.UnregisterFCMToken)
		authed.POST("/notifications/reminders", notificationHandler.SendReminders)

		authed.GET("/export/account", exportHandler.AccountExport)

		authed.GET("/audit-logs", auditHandler.GetAuditLogs)
		authed.GET("/audit-logs/:id", auditHandler.GetAuditLogByID)
	}

	// ===== Event-scoped (role-resolved) =====
	ev := authed.Group("/events/:id")
	ev.Use(middleware.EventAccess(memberSvc))
	{
		ev.GET("", eventHandler.GetEventByID)
		ev.PUT("", eventHandler.UpdateEvent)
		ev.DELETE("", eventHandler.DeleteEvent)
		ev.GET("/summary", eventHandler.GetSummary)
		ev.GET("/links", eventHandler.GetLinks)

		ev.POST("/guests", guestHandler.AddGuest)
		ev.GET("/guests", guestHandler.ListGuests)
		ev.GET("/guests/:guestId", guestHandler.GetGuest)
		ev.DELETE("/guests/:guestId", guestHandler.RemoveGuest)
		ev.POST("/guests/:guestId/rsvp", guestHandler.SetRSVP)
		ev.POST("/guests/:guestId/party", guestHandler.AddPartyMember)
		ev.DELETE("/guests/:guestId/party/:memberId", guestHandler.RemovePartyMember)

		ev.POST("/functions", functionHandler.CreateFunction)
		ev.GET("/functions", functionHandler.ListFunctions)
		ev.DELETE("/functions/:functionId", functionHandler.DeleteFunction)
		ev.POST("/functions/:functionId/invites", functionHandler.CreateInvite)
		ev.GET("/functions/:functionId/invites", functionHandler.ListInvites)
		ev.POST("/invites/bulk", functionHandler.BulkInvite)
		ev.POST("/invites/send", functionHandler.BulkSend)
		ev.POST("/invites/:inviteId/sent", functionHandler.MarkSent)
		ev.POST("/invites/:inviteId/response", functionHandler.RecordResponse)

		ev.POST("/tables", seatingHandler.CreateTable)
		ev.GET("/tables", seatingHandler.SeatingChart)
		ev.DELETE("/tables/:tableId", seatingHandler.DeleteTable)
		ev.POST("/tables/:tableId/assignments", seatingHandler.AssignGuest)
		ev.DELETE("/seating/guests/:guestId", seatingHandler.UnassignGuest)
		ev.GET("/seating/unassigned", seatingHandler.UnassignedGuests)

		ev.POST("/budget", budgetHandler.CreateBudget)
		ev.PUT("/budget", budgetHandler.UpdateTotalBudget)
		ev.GET("/budget", budgetHandler.GetSummary)
		ev.POST("/budget/categories", budgetHandler.AddCategory)
		ev.DELETE("/budget/categories/:categoryId", budgetHandler.DeleteCategory)
		ev.POST("/budget/categories/:categoryId/expenses", budgetHandler.AddExpense)
		ev.GET("/budget/categories/:categoryId/expenses", budgetHandler.ListExpenses)
		ev.POST("/budget/expenses/:expenseId/paid", budgetHandler.MarkPaid)
		ev.POST("/budget/expenses/:expenseId/unpaid", budgetHandler.MarkUnpaid)
		ev.DELETE("/budget/expenses/:expenseId", budgetHandler.DeleteExpense)
		ev.POST("/budget/splits", budgetHandler.RecordSplit)
		ev.DELETE("/budget/splits/:splitId", budgetHandler.DeleteSplit)

		ev.POST("/members", memberHandler.InviteMember)
		ev.GET("/members", memberHandler.ListMembers)
		ev.PUT("/members/:memberId/role", memberHandler.ChangeRole)
		ev.DELETE("/members/:memberId", memberHandler.RemoveMember)

		ev.GET("/export/guests", exportHandler.GuestList)
		ev.GET("/export/budget", exportHandler.BudgetReport)
	}

	return &Services{Notification: notificationSvc}
}
