package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/courtmix/americano-system/models"
)

var ErrScoreNotFound = errors.New("score not found")

// ScoreRepository stores submitted match scores keyed by (tournament, score
// key). Entries may be written in any order by several scorers; upserts are
// row-level last-write-wins, resolved by Postgres.
type ScoreRepository interface {
	Upsert(ctx context.Context, tournamentID int, key string, score models.MatchScore) error
	Delete(ctx context.Context, tournamentID int, key string) error
	MapByTournament(ctx context.Context, tournamentID int) (models.ScoreMap, error)
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresScoreRepository) Upsert(ctx context.Context, tournamentID int, key string, score models.MatchScore) error {
	query := `
		INSERT INTO scores (tournament_id, score_key, team1_score, team2_score, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tournament_id, score_key)
		DO UPDATE SET team1_score = EXCLUDED.team1_score,
		              team2_score = EXCLUDED.team2_score,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		tournamentID, key, nullableInt(score.Team1), nullableInt(score.Team2), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert score %s for tournament %d: %w", key, tournamentID, err)
	}
	return nil
}

func (r *postgresScoreRepository) Delete(ctx context.Context, tournamentID int, key string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM scores WHERE tournament_id = $1 AND score_key = $2`, tournamentID, key)
	if err != nil {
		return fmt.Errorf("failed to delete score %s for tournament %d: %w", key, tournamentID, err)
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}

// MapByTournament loads the full score snapshot of a tournament. Malformed
// rows (negative values) are normalized to an unplayed side here, at the data
// boundary, so the engine never sees a sentinel.
func (r *postgresScoreRepository) MapByTournament(ctx context.Context, tournamentID int) (models.ScoreMap, error) {
	query := `
		SELECT score_key, team1_score, team2_score
		FROM scores
		WHERE tournament_id = $1`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	scores := make(models.ScoreMap)
	for rows.Next() {
		var key string
		var team1, team2 sql.NullInt64
		if err := rows.Scan(&key, &team1, &team2); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		scores[key] = models.MatchScore{
			Team1: normalizeScore(team1),
			Team2: normalizeScore(team2),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating score rows: %w", err)
	}
	return scores, nil
}

func (r *postgresScoreRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM scores WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete scores for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func normalizeScore(v sql.NullInt64) *int {
	if !v.Valid || v.Int64 < 0 {
		return nil
	}
	n := int(v.Int64)
	return &n
}
