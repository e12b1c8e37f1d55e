package tracker

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samuelfneumann/rocketlander/environment/rocket"
	ts "github.com/samuelfneumann/rocketlander/timestep"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// batchSize is the number of records inserted per statement on Save
const batchSize = 500

// EpisodeRecord is a row of the episode_records table, describing how a
// single episode of a rocket environment ended
type EpisodeRecord struct {
	ID            uint   `gorm:"primaryKey"`
	Run           string `gorm:"index"`
	Episode       int    `gorm:"index"`
	Steps         int
	Return        float64
	Outcome       string
	FuelConsumed  float64
	TargetReached bool
	LandingSpeed  float64
	X             float64
	Y             float64
	CreatedAt     time.Time
}

// Summarizer is an environment which can summarize its current episode
type Summarizer interface {
	Summary() rocket.Summary
}

// Database tracks the outcome of each episode of a rocket environment
// and stores one EpisodeRecord per finished episode in a database.
// Records are cached in memory and written on Save.
type Database struct {
	db      *gorm.DB
	env     Summarizer
	run     string
	episode int
	ret     float64
	records []EpisodeRecord
}

// NewDatabase returns a new Database Tracker which summarizes episodes
// of env and writes them to db under the run label. The episode_records
// table is created or migrated if needed.
func NewDatabase(db *gorm.DB, env Summarizer, run string) (*Database, error) {
	if err := db.AutoMigrate(&EpisodeRecord{}); err != nil {
		return nil, fmt.Errorf("newDatabase: could not migrate: %w", err)
	}

	return &Database{db: db, env: env, run: run}, nil
}

// Track accumulates the reward of step and caches a record of the
// episode if step is the last in its episode
func (d *Database) Track(step ts.TimeStep) {
	if step.First() {
		d.ret = 0.0
		return
	}
	d.ret += step.Reward

	if !step.Last() {
		return
	}

	summary := d.env.Summary()
	d.records = append(d.records, EpisodeRecord{
		Run:           d.run,
		Episode:       d.episode,
		Steps:         step.Number,
		Return:        d.ret,
		Outcome:       summary.Outcome.String(),
		FuelConsumed:  summary.FuelConsumed,
		TargetReached: summary.TargetReached,
		LandingSpeed:  summary.LandingSpeed,
		X:             summary.X,
		Y:             summary.Y,
	})
	d.episode++
	d.ret = 0.0
}

// Save writes all cached records to the database. Records which have
// been written are not written again on the next call to Save.
func (d *Database) Save() error {
	if len(d.records) == 0 {
		return nil
	}

	if err := d.db.CreateInBatches(&d.records, batchSize).Error; err != nil {
		return fmt.Errorf("save: could not write %v records: %w",
			len(d.records), err)
	}
	d.records = d.records[:0]
	return nil
}

// OpenSQLite opens the SQLite database at path. If path is empty, a
// shared in-memory database is used.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        batchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("openSQLite: %w", err)
	}
	return db, nil
}

// LoadRecords returns the records of a run ordered by episode
func LoadRecords(db *gorm.DB, run string) ([]EpisodeRecord, error) {
	var records []EpisodeRecord
	err := db.Where("run = ?", run).Order("episode").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("loadRecords: %w", err)
	}
	return records, nil
}

// Close closes the database the Tracker writes to
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return sqlDB.Close()
}
