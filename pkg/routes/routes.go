package pkg

import (
	"context"
	"log"

	"ThesisTrack/internal/adviser"
	"ThesisTrack/internal/auth"
	"ThesisTrack/internal/authz"
	"ThesisTrack/internal/booking"
	"ThesisTrack/internal/config"
	"ThesisTrack/internal/notification"
	"ThesisTrack/internal/proposal"
	"ThesisTrack/internal/storage"
	"ThesisTrack/pkg/middleware"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewRedisClient),
	fx.Provide(config.NewEmailConfig),
	fx.Provide(config.NewEmailService),
	fx.Provide(config.NewManuscriptBucket),
	fx.Provide(auth.NewSessionBroker),
	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewAuthService),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(NewAuthzGate),
	fx.Provide(booking.NewBookingRepository),
	fx.Provide(NewBookingMirror),
	fx.Provide(booking.NewService),
	fx.Provide(booking.NewBookingHandler),
	fx.Provide(proposal.NewProposalRepository),
	fx.Provide(proposal.NewService),
	fx.Provide(proposal.NewProposalHandler),
	fx.Provide(adviser.NewRequestRepository),
	fx.Provide(adviser.NewService),
	fx.Provide(adviser.NewRequestHandler),
	fx.Provide(storage.NewService),
	fx.Provide(storage.NewStorageHandler),
	fx.Provide(notification.NewNotificationRepository),
	fx.Provide(notification.NewNotificationService),
	fx.Provide(notification.NewNotificationScheduler),
	fx.Provide(notification.NewNotificationHandler),
	fx.Invoke(EnsureIndexes),
	fx.Invoke(StartAuthzGate),
	fx.Invoke(StartBookingMirror),
	fx.Invoke(StartNotificationScheduler),
	fx.Invoke(RegisterRoutes))

func NewEchoServer(lc fx.Lifecycle) *echo.Echo {
	e := echo.New()
	middleware.SetupMiddleware(e)
	port := ":8080"
	log.Println("Server running on http://localhost" + port[1:])
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(port); err != nil {
					log.Fatal("Failed to start the server:", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func NewAuthzGate(repo *auth.UserRepository) *authz.Gate {
	return authz.NewGate(repo)
}

func NewBookingMirror(repo *booking.BookingRepository, client *redis.Client) *booking.Mirror {
	return booking.NewMirror(repo, booking.NewRedisCache(client))
}

func EnsureIndexes(db *mongo.Database) {
	config.UniqueEmailIndex(db.Collection("users"))
}

// StartAuthzGate keeps the gate attached to the auth session stream for the
// application lifetime.
func StartAuthzGate(lc fx.Lifecycle, gate *authz.Gate, sessions *auth.SessionBroker) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go gate.Run(ctx, sessions.Events())
			return nil
		},
		OnStop: func(context.Context) error {
			sessions.Close()
			cancel()
			return nil
		},
	})
}

// StartBookingMirror runs the live booking subscription.
func StartBookingMirror(lc fx.Lifecycle, mirror *booking.Mirror) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go mirror.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func StartNotificationScheduler(lc fx.Lifecycle, scheduler *notification.NotificationScheduler) {
	scheduler.StartScheduler(lc)
}

func RegisterRoutes(
	e *echo.Echo,
	authHandler *auth.AuthHandler,
	bookingHandler *booking.BookingHandler,
	proposalHandler *proposal.ProposalHandler,
	requestHandler *adviser.RequestHandler,
	storageHandler *storage.StorageHandler,
	notificationHandler *notification.NotificationHandler,
) {
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.POST("/reset-password", authHandler.ResetPassword)
	e.GET("/files/:id", storageHandler.Download)

	protected := e.Group("/api")
	protected.Use(middleware.JWTMiddleware)

	// Open to every authenticated role, like a route absent from the table.
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.Profile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.POST("/password", authHandler.ChangePassword)
	protected.GET("/navigation", authHandler.Navigation)
	protected.GET("/routeAllowed", authHandler.RouteAllowed)

	gated := protected.Group("")
	gated.Use(middleware.CasbinMiddleware)

	gated.GET("/bookings", bookingHandler.List)
	gated.GET("/rooms", bookingHandler.ListRooms)
	gated.POST("/bookings", bookingHandler.Create)
	gated.PUT("/bookings/:id", bookingHandler.Update)
	gated.DELETE("/bookings/:id", bookingHandler.Delete)

	gated.POST("/proposals", proposalHandler.Create)
	gated.POST("/proposals/:id/submit", proposalHandler.Submit)
	gated.GET("/proposals/group/:groupID", proposalHandler.ListByGroup)
	gated.GET("/proposals/submitted", proposalHandler.ListSubmitted)
	gated.POST("/proposals/:id/accept", proposalHandler.Accept)
	gated.POST("/proposals/:id/reject", proposalHandler.Reject)
	gated.POST("/proposals/:id/comment", proposalHandler.Comment)

	gated.POST("/groups", authHandler.AssignGroup)
	gated.POST("/feedback", authHandler.SetFeedback)
	gated.GET("/advisers", authHandler.ListAdvisers)

	gated.POST("/adviserRequests", requestHandler.Create)
	gated.GET("/adviserRequests/mine", requestHandler.ListMine)
	gated.GET("/adviserRequests/group/:groupID", requestHandler.ListForGroup)
	gated.POST("/adviserRequests/:id/accept", requestHandler.Accept)
	gated.POST("/adviserRequests/:id/reject", requestHandler.Reject)

	gated.POST("/manuscript", storageHandler.Upload)

	gated.POST("/notifications", notificationHandler.ScheduleNotification)
	gated.GET("/notifications", notificationHandler.ListNotifications)
	gated.DELETE("/notifications/:id", notificationHandler.DeleteNotification)

	gated.GET("/admin/users", authHandler.ListUsers)
	gated.POST("/admin/deleteUser", authHandler.DeleteUser)
}
