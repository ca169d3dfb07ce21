package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradevista/admin-console/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestAuditRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	mock.ExpectExec(`INSERT INTO audit_logs`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	actor := "admin-1"
	entry := &models.AuditLog{
		ActorID:   &actor,
		ActorName: "Admin",
		Action:    models.AuditActionTrainerDelete,
		Resource:  "trainer",
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "actor_name", "action", "resource"}).
		AddRow("a1", "Admin", models.AuditActionLogin, "auth").
		AddRow("a2", "Admin", models.AuditActionCourseDelete, "course")
	mock.ExpectQuery(`SELECT .+ FROM audit_logs ORDER BY created_at DESC`).
		WillReturnRows(rows)

	entries, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.AuditActionLogin, entries[0].Action)
	require.NoError(t, mock.ExpectationsWereMet())
}
