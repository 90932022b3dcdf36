package main

import (
	"database/sql"

	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/pbordage/restaurant-web/internal/api"
	"github.com/pbordage/restaurant-web/internal/config"
	"github.com/pbordage/restaurant-web/internal/session"
	"github.com/pbordage/restaurant-web/internal/user"
	"github.com/pbordage/restaurant-web/internal/web"
)

const sqliteUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT NOT NULL,
		hash TEXT NOT NULL
	)
`

const postgresUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT NOT NULL,
		hash TEXT NOT NULL
	)
`

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg)
	defer db.Close()
	ensureSchema(db, cfg.DBDriver)

	userRepo := user.NewSQLRepository(db)
	userService := user.NewService(userRepo)
	sessions := session.NewManager()

	app := web.NewApp()
	app.Use(logger.New())
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey(cfg)}))

	web.NewHandler(userService, sessions).RegisterRoutes(app)

	apiHandler := api.NewHandler(userService, cfg.JWTSecret)
	apiHandler.RegisterPublicRoutes(app)
	apiHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func mustOpenDB(cfg config.Config) *sql.DB {
	db, err := sql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB, driver string) {
	ddl := sqliteUsersTable
	if driver == "pgx" {
		ddl = postgresUsersTable
	}
	if _, err := db.Exec(ddl); err != nil {
		panic(err)
	}
}

func cookieKey(cfg config.Config) string {
	if cfg.CookieKey != "" {
		return cfg.CookieKey
	}
	// dev fallback: sessions will not survive a restart
	return encryptcookie.GenerateKey()
}
