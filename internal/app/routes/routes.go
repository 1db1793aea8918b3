package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/collegesocial/internal/app/controllers"
	"github.com/yigit/collegesocial/internal/middleware"
)

// Controllers groups the handlers mounted under /api.
type Controllers struct {
	Auth     *controllers.AuthController
	Posts    *controllers.PostController
	Uploads  *controllers.UploadController
	Profiles *controllers.ProfileController
	Messages *controllers.MessageController
	Health   *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, maxUploadBytes int64) {
	router.GET("/ping", c.Health.Ping)
	router.GET("/healthz", c.Health.Healthz)

	api := router.Group("/api")

	// --- Public routes ---
	api.POST("/auth/login", c.Auth.Login)

	// --- Administrative routes ---
	admin := api.Group("/admin")
	admin.Use(authMiddleware.AdminAuth(), middleware.BodyLimit(maxUploadBytes))
	{
		admin.POST("/upload", c.Uploads.UploadRoster)
	}

	// Upload accepts the token cookie, the push socket accepts ?token=.
	api.POST("/upload", authMiddleware.JWTAuthWithCookie(), middleware.BodyLimit(maxUploadBytes), c.Uploads.Upload)
	api.GET("/ws", authMiddleware.JWTAuthWithQuery(), c.Messages.Connect)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/change-password", c.Auth.ChangePassword)

		posts := authenticated.Group("/posts")
		{
			posts.GET("", c.Posts.GetFeed)
			posts.POST("", c.Posts.CreatePost)
			posts.GET("/user", c.Posts.GetMyPosts)
			posts.GET("/:id", c.Posts.GetPost)
			posts.PUT("/:id", c.Posts.UpdatePost)
			posts.DELETE("/:id", c.Posts.DeletePost)
		}
		authenticated.GET("/events", c.Posts.GetEvents)

		authenticated.GET("/user/profile", c.Profiles.GetProfile)
		authenticated.PUT("/user/profile", c.Profiles.UpdateProfile)
		authenticated.GET("/students/search", c.Profiles.SearchStudents)
		authenticated.GET("/students/:id", c.Profiles.GetStudent)
		authenticated.GET("/interests", c.Profiles.ListInterests)

		authenticated.POST("/messages", c.Messages.SendMessage)
		authenticated.GET("/messages", c.Messages.GetMessages)
		authenticated.POST("/conversations", c.Messages.CreateConversation)
		authenticated.GET("/conversations", c.Messages.ListConversations)
	}
}
