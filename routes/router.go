package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alvillalta/instagram-api/config"
	"github.com/alvillalta/instagram-api/controllers"
	"github.com/alvillalta/instagram-api/middleware"
	"github.com/alvillalta/instagram-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Respond(ctx, http.StatusOK, "ok", gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	followController := controllers.NewFollowController(db)
	postController := controllers.NewPostController(db)

	r.POST("/signup", authController.Signup)
	r.POST("/login", authController.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired())

	protected.POST("/logout", authController.Logout)

	protected.GET("/users/:id", userController.GetUser)
	protected.PUT("/users/:id", userController.UpdateUser)
	protected.DELETE("/users/:id", userController.DeactivateUser)

	protected.GET("/followers", followController.ListFollowGraph)
	protected.POST("/followers", followController.Follow)
	protected.DELETE("/followers/:following_id", followController.Unfollow)

	protected.GET("/posts", postController.ListPosts)
	protected.POST("/posts", postController.CreatePost)
	protected.GET("/posts/:id/comments", postController.ListComments)
	protected.POST("/posts/:id/comments", postController.CreateComment)
	protected.GET("/posts/:id/media", postController.GetMedia)
	protected.POST("/posts/:id/media", postController.AttachMedia)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
