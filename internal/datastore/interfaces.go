// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/hunterlog/hunterlog-go/internal/conf"
)

// SchemaVersionToken identifies the schema revision this build expects. It
// is written to the schema_versions marker table on every startup.
const SchemaVersionToken = "de225609f3b5"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Interface abstracts the underlying database implementation and defines
// the operations the rest of the application performs against storage.
type Interface interface {
	Open() error
	Close() error

	// Spots. The spot table is replaced wholesale each refresh cycle.
	ReplaceAllSpots(spots []Spot) error
	GetSpots(predicates []clause.Expression) ([]Spot, error)
	GetSpot(id uint) (*Spot, error)
	GetSpotsByMode(mode string) ([]Spot, error)

	// Spot comments, replaced per activator/park pair.
	GetSpotComments(activator, park string) ([]SpotComment, error)
	ReplaceSpotComments(activator, park string, comments []SpotComment) error

	// Logbook.
	SaveQSO(qso *QSO) (uint, error)
	GetQSO(id uint) (*QSO, error)
	GetAppQSOs() ([]QSO, error)
	CountQSOs(predicates []clause.Expression) (int64, error)
	FindQSOs(predicates []clause.Expression) ([]QSO, error)

	// Parks.
	GetPark(reference string) (*Park, error)
	UpsertPark(park *Park) error
	IncrementParkHunts(reference string) error
	SetParkHunts(reference string, hunts int) error

	// Activators, keyed by base callsign.
	GetActivator(baseCall string) (*Activator, error)
	UpsertActivator(activator *Activator) error

	// Operator configuration and schema bookkeeping.
	GetUserConfig() (*UserConfig, error)
	UpdateUserConfig(config *UserConfig) error
	EnsureSchemaVersion(version string) error
	SchemaVersion() (string, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a datastore instance based on the configured database type.
func New(settings *conf.Settings) (Interface, error) {
	switch settings.Database.Type {
	case "", "sqlite":
		return &SQLiteStore{Settings: settings}, nil
	case "mysql":
		return &MySQLStore{Settings: settings}, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", settings.Database.Type)
	}
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(
		&Spot{}, &QSO{}, &Park{}, &Activator{},
		&SpotComment{}, &UserConfig{}, &SchemaVersion{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}
	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}

// notFound translates gorm's sentinel into the package error.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
