package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/ldblocks"
)

// Compile-time interface verification.
var _ ldblocks.RevisionService = (*RevisionService)(nil)

// RevisionService implements ldblocks.RevisionService using SQLite.
type RevisionService struct {
	db *DB
}

// NewRevisionService creates a new RevisionService.
func NewRevisionService(db *DB) *RevisionService {
	return &RevisionService{db: db}
}

// ParentID returns the parent document of revisionID.
func (s *RevisionService) ParentID(ctx context.Context, revisionID string) (string, error) {
	var parentID string
	err := s.db.QueryRowContext(ctx, `
		SELECT parent_id FROM revisions WHERE id = ?
	`, revisionID).Scan(&parentID)

	if err == sql.ErrNoRows {
		return "", ldblocks.Errorf(ldblocks.ENOTFOUND, "revision %q not found", revisionID)
	}
	if err != nil {
		return "", err
	}
	return parentID, nil
}

// RegisterRevision records revisionID as a revision of parentID. A
// revision cannot be its own parent, and re-registering a revision under
// a different parent is a conflict.
func (s *RevisionService) RegisterRevision(ctx context.Context, revisionID, parentID string) error {
	if revisionID == "" || parentID == "" {
		return ldblocks.Errorf(ldblocks.EINVALID, "revision and parent id required")
	}
	if revisionID == parentID {
		return ldblocks.Errorf(ldblocks.EINVALID, "revision %q cannot be its own parent", revisionID)
	}

	existing, err := s.ParentID(ctx, revisionID)
	switch {
	case err == nil && existing == parentID:
		return nil
	case err == nil:
		return ldblocks.Errorf(ldblocks.ECONFLICT, "revision %q already belongs to %q", revisionID, existing)
	case ldblocks.ErrorCode(err) != ldblocks.ENOTFOUND:
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO revisions (id, parent_id, created_at)
		VALUES (?, ?, ?)
	`, revisionID, parentID, time.Now().UTC().Format(time.RFC3339))
	return err
}
