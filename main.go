package main

import (
	"context"
	"log"

	"library_api/app"
	"library_api/config"
	"library_api/db"
	"library_api/routes"
)

func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	application := app.MustNew(cfg)
	defer application.Close()

	app.BootstrapFirstAdmin(context.Background(), cfg, db.NewRepo(application.DB))

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	log.Printf("listening on :%s", cfg.Port)
	_ = r.Run(":" + cfg.Port)
}
