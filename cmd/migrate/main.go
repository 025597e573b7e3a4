package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *command == "create" {
		if err := create(migrationsDir(), *name); err != nil {
			logger.Fatal("create migration", zap.Error(err))
		}
		logger.Info("migration created", zap.String("name", *name))
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseDSN())
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrate(db, *command, migrationsDir()); err != nil {
		logger.Fatal("migration failed", zap.String("command", *command), zap.Error(err))
	}
	logger.Info("migration finished", zap.String("command", *command))
}

func migrate(db *sql.DB, command, dir string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", command)
	}
}

func create(dir, name string) error {
	if name == "" {
		return fmt.Errorf("name is required for 'create'")
	}
	return goose.Create(nil, dir, name, "sql")
}
