package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var postgresDialect = dialect{
	name:      "postgres",
	returning: true,
	numbered:  true,
	schema: `
		CREATE TABLE IF NOT EXISTS scores (
			id SERIAL PRIMARY KEY,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			won BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`,
	columns: "SELECT column_name FROM information_schema.columns WHERE table_name = 'scores' AND table_schema = current_schema()",
	added: map[string]string{
		"won": "ALTER TABLE scores ADD COLUMN won BOOLEAN NOT NULL DEFAULT FALSE",
	},
}

// openPostgres connects to the PostgreSQL server named by a postgres:// DSN.
func openPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	return newStore(db, postgresDialect)
}
