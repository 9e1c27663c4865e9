// Command migrate applies the per-service database schemas.
//
// Each service owns its migration set: migrations/wallet for the wallet
// service, migrations/history for the history service. The sets are
// versioned independently, so every service records its position in its
// own migrations table and both can share one database in development.
//
// Usage:
//
//	migrate -service wallet up
//	migrate -service history down -steps 1
//	migrate version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/Haleralex/walletflow/internal/config"
)

// migrationDirs maps each service to its migration set.
var migrationDirs = map[string]string{
	"wallet":  "migrations/wallet",
	"history": "migrations/history",
}

func main() {
	var (
		service     string
		databaseURL string
		steps       int
	)

	flag.StringVar(&service, "service", "all", "Schema to migrate: wallet, history or all")
	flag.StringVar(&databaseURL, "database-url", "", "Database URL (defaults to DATABASE_URL, then the service configuration)")
	flag.IntVar(&steps, "steps", 0, "Number of steps for up/down (0 = all)")
	flag.Parse()

	command := "up"
	args := flag.Args()
	if len(args) > 0 {
		command = args[0]
	}

	services, err := resolveServices(service)
	if err != nil {
		log.Fatal(err)
	}

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
		databaseURL = cfg.Database.DSN()
	}

	for _, svc := range services {
		if err := runService(svc, databaseURL, command, steps, args); err != nil {
			log.Fatalf("%s: %v", svc, err)
		}
	}
}

// resolveServices expands the -service flag into migration sets to run.
func resolveServices(service string) ([]string, error) {
	switch service {
	case "all":
		return []string{"wallet", "history"}, nil
	case "wallet", "history":
		return []string{service}, nil
	default:
		return nil, fmt.Errorf("unknown service %q (expected wallet, history or all)", service)
	}
}

// runService executes one command against one service's migration set.
func runService(service, databaseURL, command string, steps int, args []string) error {
	m, err := migrate.New("file://"+migrationDirs[service], serviceURL(databaseURL, service))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("[%s] close: source=%v database=%v", service, srcErr, dbErr)
		}
	}()

	m.Log = migrationLogger{service: service}

	switch command {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up failed: %w", err)
		}
		fmt.Printf("[%s] schema is up to date\n", service)

	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down failed: %w", err)
		}
		fmt.Printf("[%s] rolled back\n", service)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Printf("[%s] no migrations applied yet\n", service)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read version: %w", err)
		}
		fmt.Printf("[%s] version %d (dirty: %v)\n", service, version, dirty)

	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version argument")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force failed: %w", err)
		}
		fmt.Printf("[%s] forced version to %d\n", service, version)

	case "drop":
		if err := m.Drop(); err != nil {
			return fmt.Errorf("drop failed: %w", err)
		}
		fmt.Printf("[%s] schema dropped\n", service)

	default:
		return fmt.Errorf("unknown command %q (expected up, down, version, force or drop)", command)
	}

	return nil
}

// serviceURL gives each service its own migrations table so the wallet
// and history sets can version independently on a shared database.
func serviceURL(databaseURL, service string) string {
	separator := "?"
	if strings.Contains(databaseURL, "?") {
		separator = "&"
	}
	return databaseURL + separator + "x-migrations-table=schema_migrations_" + service
}

// migrationLogger adapts the standard logger to migrate.Logger, tagging
// every line with the service whose set is running.
type migrationLogger struct {
	service string
}

func (l migrationLogger) Printf(format string, v ...interface{}) {
	log.Printf("["+l.service+"] "+format, v...)
}

func (l migrationLogger) Verbose() bool {
	return true
}
