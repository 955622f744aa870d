package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/islandguide/admin-api/api"
	"github.com/islandguide/admin-api/app"
	"github.com/islandguide/admin-api/invalidate"
	"github.com/islandguide/admin-api/store"
)

// corsConfig builds the CORS policy for the configured origins. With no
// origins configured the policy falls back to a wildcard, and credentials
// must stay off then: browsers reject the wildcard-plus-credentials
// combination and allowing it would defeat the origin check.
func corsConfig(origins []string) cors.Config {
	allowCredentials := true
	if len(origins) == 0 {
		origins = []string{"*"}
		allowCredentials = false
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func main() {
	configFileName := flag.String("config", "config.json", "Path to config file")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	skipMigrations := flag.Bool("skip-migrations", false, "Skip running database migrations on startup")
	flag.Parse()

	application, err := app.New(*configFileName)
	if err != nil {
		panic(err)
	}
	defer application.CloseAllDBs()

	if *verbose {
		application.Config.Verbose = true
		application.Config.Print()
	}

	st, err := store.New(application.MainDbPool, application.Config.DbSchema, &application.Logger)
	if err != nil {
		panic(err)
	}

	if !*skipMigrations {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := st.MigrateUp(ctx, application.Config.MigrationsDir); err != nil {
			cancel()
			panic(fmt.Errorf("migrations failed: %w", err))
		}
		cancel()
	}

	var inv invalidate.Invalidator = invalidate.Noop{}
	if application.Config.AmqpUrl != "" {
		amqpInv, err := invalidate.NewAMQP(application.Config.AmqpUrl, application.Config.AmqpExchange, &application.Logger)
		if err != nil {
			panic(fmt.Errorf("invalidation bus failed: %w", err))
		}
		defer amqpInv.Close()
		inv = amqpInv
	}

	handler := api.NewApiHandler(application, st, inv)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(corsConfig(application.Config.AllowOrigins)))

	handler.RegisterRoutes(router)

	addr := ":" + strconv.Itoa(application.Config.Port)
	application.Logger.Info().Str("addr", addr).Msg("starting server")
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
