package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const LockTimeout = 4000
const IdleInTransactionSessionTimeout = 90000
const StatementTimeout = 30000

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements Store on top of a sqlx connection pool.
type PostgresStore struct {
	Conn *sqlx.DB
}

var _ Store = (*PostgresStore)(nil)

// ResolveUrl falls back to the DB_* parts when no url is configured.
func ResolveUrl(dbUrl string) (string, error) {
	if dbUrl != "" {
		return dbUrl, nil
	}

	if os.Getenv("DB_HOST") != "" &&
		os.Getenv("DB_PORT") != "" &&
		os.Getenv("DB_USER") != "" &&
		os.Getenv("DB_PASSWORD") != "" &&
		os.Getenv("DB_NAME") != "" {
		encodedPassword := url.QueryEscape(os.Getenv("DB_PASSWORD"))

		return "postgres://" + os.Getenv("DB_USER") + ":" + encodedPassword + "@" + os.Getenv("DB_HOST") + ":" + os.Getenv("DB_PORT") + "/" + os.Getenv("DB_NAME"), nil
	}

	return "", errors.New("DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, and DB_NAME environment variables must be set")
}

func withSessionParams(dbUrl string) string {
	params := fmt.Sprintf("statement_timeout=%d&lock_timeout=%d&timezone=UTC&idle_in_transaction_session_timeout=%d", StatementTimeout, LockTimeout, IdleInTransactionSessionTimeout)
	if strings.Contains(dbUrl, "?") {
		return dbUrl + "&" + params
	}
	return dbUrl + "?" + params
}

func Connect(ctx context.Context, dbUrl string, production bool) (*PostgresStore, error) {
	dbUrl, err := ResolveUrl(dbUrl)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.ConnectContext(ctx, "postgres", withSessionParams(dbUrl))
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	zap.L().Info("connected to database")

	if production {
		conn.SetMaxOpenConns(50)
		conn.SetMaxIdleConns(20)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
	}

	// Verify settings
	type setting struct {
		Name    string  `db:"name"`
		Setting string  `db:"setting"`
		Unit    *string `db:"unit"`
	}

	var settings []setting
	err = conn.SelectContext(ctx, &settings, `
		SELECT name, setting, unit
		FROM pg_settings
		WHERE name IN ('statement_timeout', 'lock_timeout', 'TimeZone', 'idle_in_transaction_session_timeout')
`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error checking settings: %v", err)
	}

	for _, s := range settings {
		unit := ""
		if s.Unit != nil {
			unit = *s.Unit
		}
		zap.L().Debug("database setting", zap.String("name", s.Name), zap.String("value", s.Setting), zap.String("unit", unit))
	}

	return &PostgresStore{Conn: conn}, nil
}

func (s *PostgresStore) Close() error {
	return s.Conn.Close()
}

// MigrationsUp applies the embedded migrations, or the ones in dir when set.
func (s *PostgresStore) MigrationsUp(dir string) error {
	if s.Conn == nil {
		return errors.New("db not initialized")
	}

	driver, err := postgres.WithInstance(s.Conn.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("error creating postgres driver: %v", err)
	}

	var m *migrate.Migrate
	if dir != "" {
		m, err = migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	} else {
		src, srcErr := iofs.New(migrationsFS, "migrations")
		if srcErr != nil {
			return fmt.Errorf("error reading embedded migrations: %v", srcErr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
	}
	if err != nil {
		return fmt.Errorf("error creating migration instance: %v", err)
	}

	err = m.Up()
	if err != nil {
		if err == migrate.ErrNoChange {
			zap.L().Info("migration state is up to date")
			return nil
		}
		return fmt.Errorf("error running migrations: %v", err)
	}

	zap.L().Info("ran migrations successfully")
	return nil
}
