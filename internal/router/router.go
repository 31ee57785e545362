package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"clubportal/internal/auth"
	"clubportal/internal/config"
	"clubportal/internal/handler"
	"clubportal/internal/repository"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Seed         *handler.SeedHandler
	Club         *handler.ClubHandler
	Board        *handler.BoardHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Vote         *handler.VoteHandler
	Attendance   *handler.AttendanceHandler
	Assignment   *handler.AssignmentHandler
	Quiz         *handler.QuizHandler
	Schedule     *handler.ScheduleHandler
	Gamification *handler.GamificationHandler
	Portfolio    *handler.PortfolioHandler
	Search       *handler.SearchHandler
	Backup       *handler.BackupHandler
	Admin        *handler.AdminHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	jwtService *auth.JWTService,
	tokens auth.TokenStoreInterface,
	users repository.UserRepository,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Auth.Login, loginLimiter(cfg.LoginRate, cfg.LoginBurst))
	api.POST("/auth/refresh", h.Auth.Refresh)

	// Everything else needs a live access token
	secured := api.Group("", jwtAuth(jwtService), identify(tokens, users))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.Auth.Me)
	secured.PUT("/me/password", h.Auth.ChangePassword)

	secured.GET("/users", h.User.ListUsers)
	secured.POST("/users", h.User.CreateUser)
	secured.GET("/users/:username", h.User.GetUser)
	secured.PUT("/users/:username", h.User.UpdateUser)
	secured.DELETE("/users/:username", h.User.DeleteUser)

	secured.GET("/clubs", h.Club.List)
	secured.POST("/clubs", h.Club.Create)
	secured.GET("/clubs/:id", h.Club.Get)
	secured.PUT("/clubs/:id", h.Club.Update)
	secured.DELETE("/clubs/:id", h.Club.Delete)
	secured.GET("/clubs/:id/members", h.Club.Members)
	secured.GET("/clubs/:id/qr", h.Club.MeetQRCode)

	secured.GET("/posts", h.Board.ListPosts)
	secured.POST("/posts", h.Board.CreatePost)
	secured.GET("/posts/:id", h.Board.GetPost)
	secured.PUT("/posts/:id", h.Board.UpdatePost)
	secured.DELETE("/posts/:id", h.Board.DeletePost)
	secured.POST("/posts/:id/like", h.Board.LikePost)
	secured.GET("/posts/:id/comments", h.Board.ListComments)
	secured.POST("/posts/:id/comments", h.Board.AddComment)
	secured.DELETE("/comments/:id", h.Board.DeleteComment)

	secured.GET("/chat/rooms/:room/messages", h.Chat.Recent)
	secured.POST("/chat/rooms/:room/messages", h.Chat.Send)
	secured.GET("/chat/rooms/:room/stats", h.Chat.Stats)
	secured.DELETE("/chat/messages/:id", h.Chat.Delete)

	secured.GET("/notifications", h.Notification.List)
	secured.POST("/notifications", h.Notification.Send)
	secured.GET("/notifications/stats", h.Notification.Stats)
	secured.PUT("/notifications/read-all", h.Notification.MarkAllRead)
	secured.PUT("/notifications/:id/read", h.Notification.MarkRead)
	secured.DELETE("/notifications/:id", h.Notification.Delete)

	secured.GET("/votes", h.Vote.List)
	secured.POST("/votes", h.Vote.Create)
	secured.POST("/votes/:id/responses", h.Vote.Submit)
	secured.POST("/votes/:id/end", h.Vote.End)
	secured.GET("/votes/:id/results", h.Vote.Results)

	secured.GET("/attendance", h.Attendance.List)
	secured.POST("/attendance/roster", h.Attendance.RecordRoster)
	secured.POST("/attendance/check-in", h.Attendance.CheckIn)
	secured.GET("/attendance/stats/users/:username", h.Attendance.UserStats)
	secured.GET("/attendance/stats/clubs/:club", h.Attendance.ClubStats)

	secured.GET("/assignments", h.Assignment.List)
	secured.POST("/assignments", h.Assignment.Create)
	secured.POST("/assignments/:id/submissions", h.Assignment.Submit)
	secured.GET("/assignments/:id/submissions", h.Assignment.Submissions)
	secured.POST("/assignments/:id/close", h.Assignment.Close)
	secured.GET("/submissions/mine", h.Assignment.MySubmissions)
	secured.PUT("/submissions/:id/grade", h.Assignment.Grade)

	secured.GET("/quizzes", h.Quiz.List)
	secured.POST("/quizzes", h.Quiz.Create)
	secured.GET("/quizzes/:id", h.Quiz.Get)
	secured.DELETE("/quizzes/:id", h.Quiz.Delete)
	secured.POST("/quizzes/:id/attempts", h.Quiz.Take)
	secured.PUT("/quizzes/:id/active", h.Quiz.SetActive)
	secured.GET("/quizzes/:id/results", h.Quiz.Results)
	secured.GET("/quiz-responses/mine", h.Quiz.MyResponses)

	secured.GET("/schedule", h.Schedule.List)
	secured.POST("/schedule", h.Schedule.Create)
	secured.PUT("/schedule/:id", h.Schedule.Update)
	secured.DELETE("/schedule/:id", h.Schedule.Delete)

	secured.GET("/points/:username", h.Gamification.Points)
	secured.GET("/ranking", h.Gamification.Ranking)
	secured.GET("/badges/:username", h.Gamification.Badges)
	secured.POST("/badges", h.Gamification.Award)

	secured.GET("/portfolio", h.Portfolio.ListOwn)
	secured.POST("/portfolio", h.Portfolio.Add)
	secured.GET("/portfolio/featured", h.Portfolio.Featured)
	secured.GET("/portfolio/stats", h.Portfolio.Stats)
	secured.PUT("/portfolio/:id/status", h.Portfolio.SetStatus)
	secured.DELETE("/portfolio/:id", h.Portfolio.Delete)

	secured.GET("/search", h.Search.Search)

	secured.GET("/backups", h.Backup.List)
	secured.POST("/backups", h.Backup.Create)
	secured.POST("/backups/restore", h.Backup.Restore)
	secured.GET("/backups/:name", h.Backup.Download)

	admin := secured.Group("/admin")
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/warnings", h.Admin.Warnings)
	admin.GET("/logs", h.Admin.Logs)
	admin.DELETE("/logs", h.Admin.CleanupLogs)
	admin.POST("/seed", h.Seed.Seed)
	admin.POST("/reminders/deadlines", h.Notification.DeadlineReminders)
	admin.POST("/reminders/schedule", h.Notification.ScheduleReminders)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
