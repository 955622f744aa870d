// Package app wires the process together: configuration, the Postgres
// pool, logging and the authentication guard used by the admin routes.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type App struct {
	Version    string
	APIName    string
	MainDbPool *pgxpool.Pool
	Config     Config
	JwtKey     []byte
	Logger     zerolog.Logger
}

func New(configFilePath string) (*App, error) {
	var app App

	app.Version = "1.0.0"
	app.APIName = "IslandGuide Admin"

	config, err := LoadConfig(configFilePath)
	if err != nil {
		return nil, err
	}
	app.Config = config
	app.JwtKey = []byte(config.JwtSecret)

	level := zerolog.InfoLevel
	if config.Verbose {
		level = zerolog.DebugLevel
	}
	app.Logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	app.Logger.Debug().Msg("initialize database")
	if err := app.InitMainDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize main DB: %w", err)
	}

	app.Logger.Info().Str("api", app.APIName).Str("version", app.Version).Msg("initialized")
	return &app, nil
}

func (app *App) InitMainDB() error {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		app.Config.DbUser, app.Config.DbPassword, app.Config.DbHost, app.Config.DbPort, app.Config.DbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return err
	}
	app.MainDbPool = pool

	app.Logger.Debug().Str("db", app.Config.DbName).Msg("database pool created")
	return nil
}

func (app *App) CloseAllDBs() {
	if app.MainDbPool != nil {
		app.MainDbPool.Close()
	}
}

// DbErrorToHTTP maps database errors to HTTP status codes.
func DbErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // Unique constraint violation
			return http.StatusConflict
		case "23503": // Foreign key violation
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}

	return http.StatusInternalServerError
}
