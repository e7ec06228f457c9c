package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// dryRunDB builds a gorm handle that renders SQL without executing it and
// records the last statement through a query callback.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var lastSQL string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		lastSQL = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	return db, &lastSQL
}

// The capacity check-then-act paths depend on this method actually taking a
// row lock; a plain SELECT here lets two concurrent promotions both see the
// same free spots.
func TestFindByIDForUpdate_EmitsRowLock(t *testing.T) {
	db, lastSQL := dryRunDB(t)
	repo := NewRetreatRepository(db)

	_, err := repo.FindByIDForUpdate(context.Background(), db, 7)

	require.NoError(t, err)
	assert.Contains(t, *lastSQL, "FOR UPDATE")
}

func TestFindByID_NoLock(t *testing.T) {
	db, lastSQL := dryRunDB(t)
	repo := NewRetreatRepository(db)

	_, err := repo.FindByID(context.Background(), 7)

	require.NoError(t, err)
	assert.NotContains(t, *lastSQL, "FOR UPDATE")
}
