// Package app assembles the catalog server: logging, storage, migrations,
// seed data and the HTTP surface.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marketbay/catalog-server/app/categories"
	"github.com/marketbay/catalog-server/app/products"
	"github.com/marketbay/catalog-server/app/server"
	"github.com/marketbay/catalog-server/app/web"
	"github.com/marketbay/catalog-server/config"
	"github.com/marketbay/catalog-server/migrations"
	"github.com/marketbay/catalog-server/models"
)

type App struct {
	cfg        config.Config
	db         *gorm.DB
	httpServer server.HTTPServer
}

func New(cfg config.Config) *App {
	app := &App{cfg: cfg}
	app.initLogger()
	app.initStorage()
	app.initHTTP()
	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.SlogLevel()}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	app.migrate()

	db, err := gorm.Open(postgres.Open(app.cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.db = db

	if app.cfg.Seed {
		if err := models.Seed(db); err != nil {
			app.fallDown(op, err)
		}
	}
}

// migrate brings the schema up to date from the embedded migration files.
// The migration connection is separate from the GORM pool and closed as
// soon as the schema is current.
func (app *App) migrate() {
	const op = "App.migrate"
	log := slog.With("op", op)

	sqlDB, err := sql.Open("postgres", app.cfg.DatabaseDSN)
	if err != nil {
		app.fallDown(op, err)
	}
	defer sqlDB.Close()

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		app.fallDown(op, err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		app.fallDown(op, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		app.fallDown(op, err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			app.fallDown(op, err)
		}
		log.Info("schema already up to date")
		return
	}
	log.Info("schema migrated")
}

func (app *App) initHTTP() {
	const op = "App.initHTTP"

	renderer, err := web.NewRenderer()
	if err != nil {
		app.fallDown(op, err)
	}

	productsHandler := products.NewProductsHandler(
		models.NewProductsRepository(app.db), renderer, app.cfg.BaseURL)
	categoriesHandler := categories.NewCategoriesHandler(
		models.NewCategoriesRepository(app.db), renderer, app.cfg.BaseURL)
	static := web.NewStatic(app.cfg.PublicDir, renderer)

	handler := server.NewRouter(productsHandler, categoriesHandler, static, renderer)
	app.httpServer = server.New(app.cfg.HTTPAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	slog.Info("catalog server is running", "addr", app.cfg.HTTPAddr)
}

func (app *App) Close(ctx context.Context) {
	app.httpServer.Close(ctx)
	slog.Info("catalog server stopped")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
