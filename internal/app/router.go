package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportshub/internal/cache"
	"sportshub/internal/config"
	"sportshub/internal/document"
	"sportshub/internal/live"
	"sportshub/internal/middleware"
	"sportshub/internal/modules/achievement"
	"sportshub/internal/modules/auth"
	"sportshub/internal/modules/booking"
	"sportshub/internal/modules/report"
	"sportshub/internal/modules/user"
	"sportshub/internal/notification"
	"sportshub/internal/pkg/jwt"
	"sportshub/internal/pkg/response"
	"sportshub/internal/repository"
	"sportshub/internal/storage"
)

const uploadsURL = "/uploads"

type TaskRunner interface {
	Submit(name string, task func(ctx context.Context) error)
}

// Deps are the long-lived collaborators main owns and closes.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Tokens *jwt.Service
	Mailer notification.Sender
	Tasks  TaskRunner
	Guard  cache.LoginGuard
	Hub    *live.Hub
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Static(uploadsURL, cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	userRepo := repository.NewUserRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	reportRepo := repository.NewReportRepository(d.DB)
	achievementRepo := repository.NewAchievementRepository(d.DB)

	docs := document.NewRenderer(cfg.PDFDir)
	images := storage.NewImageStore(cfg.UploadDir, uploadsURL)

	authService := auth.NewService(userRepo, d.Tokens, d.Guard, docs, d.Mailer, d.Tasks, cfg.AllowAdminSignup)
	userService := user.NewService(userRepo, bookingRepo, docs, d.Mailer, d.Tasks, cfg.AdminEmail)
	bookingService := booking.NewService(bookingRepo, userRepo, docs, d.Mailer, d.Tasks, d.Hub)
	reportService := report.NewService(reportRepo, userRepo, d.Mailer, d.Tasks, cfg.AdminEmail)
	achievementService := achievement.NewService(achievementRepo, images)

	authn := middleware.JWTAuth(d.Tokens)
	api := r.Group("/api")

	auth.NewHandler(authService).RegisterRoutes(api, authn)
	user.NewHandler(userService).RegisterRoutes(api, authn)
	booking.NewHandler(bookingService).RegisterRoutes(api, authn)
	report.NewHandler(reportService).RegisterRoutes(api, authn)
	achievement.NewHandler(achievementService).RegisterRoutes(api, authn)

	liveHandler := live.NewHandler(d.Hub, cfg.CORSAllowedOrigins, d.Log)
	api.GET("/admin/live", authn, middleware.AdminOnly(), liveHandler.Serve)

	return r
}
