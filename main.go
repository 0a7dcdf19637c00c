package main

import (
	"github.com/alvillalta/instagram-api/config"
	"github.com/alvillalta/instagram-api/models"
	"github.com/alvillalta/instagram-api/routes"
	"github.com/alvillalta/instagram-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Media{},
		&models.Comment{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
