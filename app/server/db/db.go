package db

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

var Conn *sqlx.DB

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

const sqlitePrefix = "sqlite://"

const LockTimeout = 4000
const IdleInTransactionSessionTimeout = 90000
const StatementTimeout = 30000

func init() {
	// sqlx doesn't know modernc's driver name; it takes ? placeholders
	sqlx.BindDriver(DriverSqlite, sqlx.QUESTION)
}

// Connect opens the database named by DATABASE_URL (or the DB_* variables).
// A sqlite:// url selects the embedded SQLite driver.
func Connect() error {
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		if os.Getenv("DB_HOST") != "" &&
			os.Getenv("DB_PORT") != "" &&
			os.Getenv("DB_USER") != "" &&
			os.Getenv("DB_PASSWORD") != "" &&
			os.Getenv("DB_NAME") != "" {
			encodedPassword := url.QueryEscape(os.Getenv("DB_PASSWORD"))

			dbUrl = "postgres://" + os.Getenv("DB_USER") + ":" + encodedPassword + "@" + os.Getenv("DB_HOST") + ":" + os.Getenv("DB_PORT") + "/" + os.Getenv("DB_NAME")
		}

		if dbUrl == "" {
			return errors.New("DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, and DB_NAME environment variables must be set")
		}
	}

	return ConnectUrl(dbUrl)
}

func ConnectUrl(dbUrl string) error {
	var err error

	if strings.HasPrefix(dbUrl, sqlitePrefix) {
		Conn, err = connectSqlite(strings.TrimPrefix(dbUrl, sqlitePrefix))
	} else {
		Conn, err = connectPostgres(dbUrl)
	}
	if err != nil {
		return err
	}

	log.Printf("connected to %s database", Conn.DriverName())

	return nil
}

func connectPostgres(dbUrl string) (*sqlx.DB, error) {
	if strings.Contains(dbUrl, "?") {
		dbUrl += fmt.Sprintf("&statement_timeout=%d&lock_timeout=%d&timezone=UTC&idle_in_transaction_session_timeout=%d", StatementTimeout, LockTimeout, IdleInTransactionSessionTimeout)
	} else {
		dbUrl += fmt.Sprintf("?statement_timeout=%d&lock_timeout=%d&timezone=UTC&idle_in_transaction_session_timeout=%d", StatementTimeout, LockTimeout, IdleInTransactionSessionTimeout)
	}

	conn, err := sqlx.Connect(DriverPostgres, dbUrl)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %v", err)
	}

	if os.Getenv("GOENV") == "production" {
		conn.SetMaxOpenConns(50)
		conn.SetMaxIdleConns(20)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
	}

	return conn, nil
}

func connectSqlite(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite database path is empty")
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

	conn, err := sqlx.Connect(DriverSqlite, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %v", err)
	}

	// single writer; a second connection would just wait on the file lock
	conn.SetMaxOpenConns(1)

	return conn, nil
}

func Close() error {
	if Conn == nil {
		return nil
	}
	err := Conn.Close()
	Conn = nil
	return err
}

func MigrationsUp() error {
	if Conn == nil {
		return errors.New("db not initialized")
	}

	driverName := Conn.DriverName()

	var driver database.Driver
	var err error
	switch driverName {
	case DriverPostgres:
		driver, err = postgres.WithInstance(Conn.DB, &postgres.Config{})
	case DriverSqlite:
		driver, err = sqlite.WithInstance(Conn.DB, &sqlite.Config{})
	default:
		return fmt.Errorf("no migrations for driver %s", driverName)
	}
	if err != nil {
		return fmt.Errorf("error creating %s migration driver: %v", driverName, err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+driverName)
	if err != nil {
		return fmt.Errorf("error loading migrations: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %v", err)
	}

	err = m.Up()

	if err != nil {
		if err == migrate.ErrNoChange {
			log.Println("migration state is up to date")
		} else {
			return fmt.Errorf("error running migrations: %v", err)
		}
	}

	if err == nil {
		log.Println("ran migrations successfully")
	}

	return nil
}
