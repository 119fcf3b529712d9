package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	accounts "github.com/goliatone/go-accounts"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Config holds the service environment
type Config struct {
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8080"`
	Debug          bool   `env:"DEBUG" envDefault:"false"`
	RevokeOnLogout bool   `env:"REVOKE_TOKEN_ON_LOGOUT" envDefault:"false"`
	Persistence    Persistence
}

// Persistence holds the database settings the persistence client consumes
type Persistence struct {
	DSN                   string `env:"SQLITE_DSN" envDefault:"file:accounts.db?cache=shared"`
	Debug                 bool   `env:"DB_DEBUG" envDefault:"false"`
	PingTimeoutExpression string `env:"DB_PING_TIMEOUT" envDefault:"5s"`
}

func (p Persistence) GetDSN() string {
	return p.DSN
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetDriver() string {
	return sqliteshim.ShimName
}

func (p Persistence) GetServer() string {
	return p.DSN
}

func (p Persistence) GetOtelIdentifier() string {
	return ""
}

func (p Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithName("accounts"),
		glog.WithAddSource(false),
	)
	logger := lgr.GetLogger("server")

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		logger.Error("unable to parse environment", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	bunDB, err := openDatabase(ctx, cfg.Persistence, lgr)
	if err != nil {
		logger.Error("unable to open database", "error", err, "dsn", cfg.Persistence.DSN)
		os.Exit(1)
	}
	defer bunDB.Close()

	repo := accounts.NewRepositoryManager(bunDB)
	repo.MustValidate()

	auther := accounts.NewAuthenticator(repo).
		WithLogger(lgr.GetLogger("auth")).
		WithRevokeTokenOnLogout(cfg.RevokeOnLogout)

	provider := accounts.NewAccountProvider(repo).
		WithLogger(lgr.GetLogger("accounts"))

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName: "go-accounts",
		}))
	})

	accounts.RegisterAccountRoutes(srv.Router(),
		accounts.WithAuthenticator(auther),
		accounts.WithAccountManager(provider),
		accounts.WithControllerLogger(lgr.GetLogger("http")),
		accounts.WithControllerDebug(cfg.Debug),
	)

	logger.Info("listening", "addr", cfg.HTTPAddr)
	srv.Serve(cfg.HTTPAddr)

	WaitExitSignal()
}

func openDatabase(ctx context.Context, cfg Persistence, lgr *glog.BaseLogger) (*bun.DB, error) {
	db, err := sql.Open(sqliteshim.ShimName, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	persistence.RegisterModel((*accounts.Account)(nil))

	client, err := persistence.New(cfg, db, sqlitedialect.New())
	if err != nil {
		return nil, err
	}

	client.SetLogger(lgr.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(accounts.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}

	return client.DB(), nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
