package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-agenda/internal/db"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/routes"
	syncpkg "github.com/BruksfildServices01/barber-agenda/internal/sync"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// ======================================================
	// 🔄 CAMADA DE SINCRONIZAÇÃO
	// ======================================================
	hub := syncpkg.NewHub()
	broadcast := syncpkg.NewBroadcast(rdb)

	reloader := ucAppointment.NewListAppointmentsByRange(
		infraRepo.NewAppointmentGormRepository(db),
	)
	coordinator := syncpkg.NewCoordinator(reloader, hub, broadcast)
	listener := syncpkg.NewListener(cfg.DBUrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go coordinator.Run(ctx)
	go listener.Run(ctx, coordinator.Events())
	go broadcast.Subscribe(ctx, coordinator.Events())

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"connections": hub.Count(),
		})
	})

	routes.RegisterRoutes(r, db, cfg, hub, coordinator)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
