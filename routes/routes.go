// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"photoshare-api/config"
	"photoshare-api/controllers"
	"photoshare-api/middleware"
	"photoshare-api/services"
	"photoshare-api/telemetry"
)

// Dependencies are the services the HTTP layer is built from.
type Dependencies struct {
	Users     *services.UserService
	Friends   *services.FriendService
	Photos    *services.PhotoService
	Reactions *services.ReactionService
	Tokens    *services.TokenService
	Checks    map[string]controllers.HealthCheck
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	// Controllers
	authController := controllers.NewAuthController(deps.Users)
	userController := controllers.NewUserController(deps.Users, deps.Friends, cfg.Storage.MaxUploadSize)
	friendController := controllers.NewFriendController(deps.Friends)
	photoController := controllers.NewPhotoController(deps.Photos, cfg.Storage.MaxUploadSize)
	reactionController := controllers.NewReactionController(deps.Reactions)
	healthController := controllers.NewHealthController(deps.Checks)

	r.GET("/ping", healthController.Ping)
	r.GET("/health", healthController.Health)
	if cfg.Telemetry.PrometheusEnabled {
		r.GET("/metrics", gin.WrapH(telemetry.MetricsHandler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.Storage.Driver == "local" {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}

	auth := middleware.AuthMiddleware(deps.Tokens)

	api := r.Group("/api")
	api.Use(middleware.SecurityHeaders(), middleware.ValidateJSON())

	// Account routes (public)
	admin := api.Group("/admin")
	{
		admin.POST("/register", authController.Register)
		admin.POST("/login", authController.Login)
		admin.POST("/logout", authController.Logout)
	}

	user := api.Group("/user")
	{
		user.GET("/list", auth, userController.ListFriends)
		user.GET("/available", auth, userController.ListAvailable)
		user.POST("/update", auth, userController.UpdateProfile)
		user.POST("/upload-avatar", auth, userController.UploadAvatar)
		user.GET("/:id", userController.GetUser)
	}

	friend := api.Group("/friend")
	friend.Use(auth)
	{
		friend.POST("/send-request", friendController.SendRequest)
		friend.PUT("/respond/:friendId", friendController.Respond)
		friend.GET("/list", friendController.ListFriends)
		friend.GET("/requests", friendController.ListRequests)
		friend.GET("/sent", friendController.ListSent)
		friend.GET("/my-link", friendController.GetMyLink)
		friend.GET("/status/:userId", friendController.GetStatus)
	}

	photo := api.Group("/photo")
	{
		photo.GET("", photoController.ListPhotos)
		photo.GET("/photosOfUser/:id", photoController.PhotosOfUser)
		photo.POST("/upload", auth, photoController.Upload)
		photo.DELETE("/delete/:id", auth, photoController.Delete)
		photo.POST("/commentsOfPhoto/:photoId", auth, photoController.AddComment)
		photo.GET("/commentsOfPhoto/:photoId", photoController.ListComments)
	}

	reaction := api.Group("/reaction")
	{
		reaction.POST("/:photoId", auth, reactionController.React)
		reaction.DELETE("/:photoId", auth, reactionController.Unreact)
		reaction.GET("/:photoId", reactionController.GetReactions)
		reaction.GET("/:photoId/user/:userId", reactionController.GetUserReaction)
	}
}
