package snapshotrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"goseller/internal/errors"
	"goseller/internal/pkg/logger"
)

// Snapshot é a fotografia serializada de uma sessão de autoria (autosave).
// Permite recuperar o rascunho do vendedor após reinício do portal sem perda
// de dados.
type Snapshot struct {
	SessionID string
	SellerID  string
	Payload   []byte
	UpdatedAt time.Time
}

// SnapshotRepository persiste snapshots de sessão no PostgreSQL.
type SnapshotRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	Logger    logger.Logger
}

// NewSnapshotRepository cria e retorna uma nova instância do Repositório.
func NewSnapshotRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		Logger:    log,
	}
}

// Save grava (ou sobrescreve) o snapshot de uma sessão.
func (r *SnapshotRepository) Save(ctx context.Context, sessionID, sellerID string, payload []byte) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const upsertSQL = `
		INSERT INTO session_snapshots (session_id, seller_id, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	_, err := r.DB.ExecContext(ctxTimeout, upsertSQL,
		sessionID,
		sellerID,
		payload,
		time.Now().UTC(),
	)
	if err != nil {
		return errors.NewDBError("Falha ao gravar snapshot da sessão", err)
	}
	return nil
}

// Find busca o snapshot de uma sessão.
func (r *SnapshotRepository) Find(ctx context.Context, sessionID string) (string, []byte, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const selectSQL = `
		SELECT session_id, seller_id, payload, updated_at
		FROM session_snapshots
		WHERE session_id = $1`

	var snap Snapshot
	err := r.DB.QueryRowContext(ctxTimeout, selectSQL, sessionID).Scan(
		&snap.SessionID,
		&snap.SellerID,
		&snap.Payload,
		&snap.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return "", nil, errors.NewNotFoundError(fmt.Sprintf("Snapshot da sessão %s não existe.", sessionID))
	}
	if err != nil {
		return "", nil, errors.NewDBError("Falha ao buscar snapshot da sessão", err)
	}
	return snap.SellerID, snap.Payload, nil
}

// Delete remove o snapshot de uma sessão (idempotente).
func (r *SnapshotRepository) Delete(ctx context.Context, sessionID string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const deleteSQL = `DELETE FROM session_snapshots WHERE session_id = $1`
	if _, err := r.DB.ExecContext(ctxTimeout, deleteSQL, sessionID); err != nil {
		return errors.NewDBError("Falha ao remover snapshot da sessão", err)
	}
	return nil
}
