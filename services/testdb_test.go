package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"knowledge-base/config"
	"knowledge-base/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestStore opens a private in-memory sqlite database with foreign keys
// enforced and the schema migrated.
func newTestStore(t *testing.T) (*KnowledgeStore, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dialector, err := config.Dialector(config.DatabaseSettings{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, testDBSeq.Add(1)),
	})
	require.NoError(t, err)

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db, zap.NewNop()))
	return NewKnowledgeStore(db, zap.NewNop()), db
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

type fixtures struct {
	article *models.PublicationType
	review  *models.PublicationType
}

func seedVocabulary(t *testing.T, store *KnowledgeStore) fixtures {
	t.Helper()
	ctx := context.Background()

	article, err := store.Vocabulary.CreatePublicationType(ctx, "Article")
	require.NoError(t, err)
	review, err := store.Vocabulary.CreatePublicationType(ctx, "Review")
	require.NoError(t, err)
	return fixtures{article: article, review: review}
}

func newPublication(typeID uint, title string, year int) *models.Publication {
	return &models.Publication{
		Title:             title,
		Date:              models.NewDate(year, 1, 15),
		PublicationTypeID: typeID,
		FromScopus:        true,
	}
}
