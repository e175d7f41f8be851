package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/deck-app/deck-account-backend/internal/accounts/domain"
	accountshttp "github.com/deck-app/deck-account-backend/internal/accounts/http"
	accountsmw "github.com/deck-app/deck-account-backend/internal/accounts/middleware"
	"github.com/deck-app/deck-account-backend/internal/accounts/repository"
	"github.com/deck-app/deck-account-backend/internal/accounts/service"
	httpapi "github.com/deck-app/deck-account-backend/internal/api/http"
	"github.com/deck-app/deck-account-backend/internal/api/http/middleware"
	storagehttp "github.com/deck-app/deck-account-backend/internal/storage/http"
	storagerepo "github.com/deck-app/deck-account-backend/internal/storage/repository"
	storagesvc "github.com/deck-app/deck-account-backend/internal/storage/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	RateLimitRPM   int
	MaxUploadBytes int64
	Firebase       *Firebase
	Redis          *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(dep.Redis, dep.RateLimitRPM))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	identityRepo := repository.NewIdentityRepository(dep.Firebase.Auth)
	profileRepo := repository.NewProfileRepository(dep.Firebase.Firestore)

	authService := service.NewAuthService(identityRepo)
	accountService := service.NewAccountService(identityRepo, profileRepo)
	accountHandler := accountshttp.New(authService, accountService)

	api := r.Group("/api/v1")
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Deck Authentication and Account Management API is running",
		})
	})

	accountHandler.Register(api)

	session := api.Group("")
	session.Use(accountsmw.Session(authService))
	accountHandler.RegisterSession(session)

	moderator := api.Group("/moderator")
	moderator.Use(accountsmw.Session(authService))
	moderator.Use(accountsmw.RequireRole(accountService, domain.RoleModerator))
	accountHandler.RegisterModerator(moderator)

	if dep.Firebase.Bucket != nil {
		storageRepo := storagerepo.NewStorageRepository(
			storagerepo.NewGCSBucket(dep.Firebase.Bucket), dep.Firebase.BucketName)
		storageService := storagesvc.NewStorageService(storageRepo, dep.MaxUploadBytes)
		storagehttp.New(storageService).Register(session)
	}

	return r
}
