package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/creditwise/internal/config"
	"github.com/carson-networks/creditwise/internal/storage/report"
)

type Storage struct {
	DB      *sql.DB
	bobDB   bob.DB
	Reports report.IReader
}

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:      db,
		bobDB:   bobDB,
		Reports: NewReader(bobDB).Reports,
	}
}

// Write opens a database transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	finisher := txFinisher{commit: tx.Commit, rollback: tx.Rollback}
	return NewWriter(finisher, report.NewWriter(tx)), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
