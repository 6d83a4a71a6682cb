// Command migrate applies the embedded goose migrations.
//
//	migrate up|down|status
package main

import (
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pedrohsilva/tarefas-api/config"
	"github.com/pedrohsilva/tarefas-api/internal/infrastructure/postgres/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		log.Fatalf("unknown command %q (want up, down, or status)", command)
	}
	if err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}
}
