package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
	"github.com/jonielmendes/AlugaLarCorrente/internal/repository"
)

// newMockDB 返回挂在 sqlmock 上的 PostgreSQL 方言 gorm.DB
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormListingRepository_IncrementViews(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectExec(`UPDATE "listings" SET "view_count"=view_count \+ \$1 WHERE id = \$2`).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "listings" SET "view_count"=view_count \+ \$1 WHERE id = \$2`).
		WithArgs(1, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementViews(context.Background(), 7))
	assert.ErrorIs(t, repo.IncrementViews(context.Background(), 8), repository.ErrListingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_ToggleActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectExec(`UPDATE "listings" SET "active"=NOT active,"updated_at"=\$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ToggleActive(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_SetActiveMany(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	n, err := repo.SetActiveMany(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Zero(t, n)

	mock.ExpectExec(`UPDATE "listings" SET "active"=\$1,"updated_at"=\$2 WHERE id IN \(\$3,\$4\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err = repo.SetActiveMany(context.Background(), []uint{1, 2}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_Create_OrdersGalleryFromZero(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "listings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "listing_images" \("listing_id","image","caption","sort_order"\) VALUES \(\$1,\$2,\$3,\$4\),\(\$5,\$6,\$7,\$8\)`).
		WithArgs(10, "imoveis/galeria/a.jpg", "", 0, 10, "imoveis/galeria/b.jpg", "Sala", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	listing := &domain.Listing{Title: "Casa", Price: decimal.RequireFromString("900"), Active: false}
	images := []domain.ListingImage{
		{Image: "imoveis/galeria/a.jpg", Order: 7},
		{Image: "imoveis/galeria/b.jpg", Caption: "Sala"},
	}
	require.NoError(t, repo.Create(context.Background(), listing, images))

	assert.Equal(t, uint(10), listing.ID)
	assert.False(t, listing.Active)
	require.Len(t, listing.Images, 2)
	assert.Equal(t, 0, listing.Images[0].Order)
	assert.Equal(t, 1, listing.Images[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_Update_AppendsAfterExistingImages(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "listings" SET "title"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "id" FROM "listings" WHERE "listings"."id" = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "listing_images" WHERE listing_id = \$1`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	// 已有图片不重新编号，只插入新图片
	mock.ExpectQuery(`INSERT INTO "listing_images" \("listing_id","image","caption","sort_order"\) VALUES \(\$1,\$2,\$3,\$4\),\(\$5,\$6,\$7,\$8\)`).
		WithArgs(4, "imoveis/galeria/d.jpg", "", 3, 4, "imoveis/galeria/e.jpg", "Quarto", 4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))
	mock.ExpectCommit()

	listing := &domain.Listing{ID: 4, Title: "Casa reformada", Price: decimal.RequireFromString("950"), Active: true}
	newImages := []domain.ListingImage{
		{Image: "imoveis/galeria/d.jpg"},
		{Image: "imoveis/galeria/e.jpg", Caption: "Quarto"},
	}
	require.NoError(t, repo.Update(context.Background(), listing, newImages))

	assert.Equal(t, 3, newImages[0].Order)
	assert.Equal(t, 4, newImages[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_Update_NotFoundRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "listings" SET "title"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &domain.Listing{ID: 9, Title: "X"}, nil)
	assert.ErrorIs(t, err, repository.ErrListingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "listings" WHERE "listings"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrListingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "listing_images" WHERE listing_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "listings" WHERE "listings"."id" = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), repository.ErrListingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListingRepository_Stats_FillsMissingTypes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormListingRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "listings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "listings" WHERE active = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT property_type, COUNT\(\*\) AS total FROM "listings" WHERE active = \$1 GROUP BY "property_type"`).
		WillReturnRows(sqlmock.NewRows([]string{"property_type", "total"}).
			AddRow("casa", 3).
			AddRow("kitnet", 1))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(4), stats.Active)
	assert.Equal(t, map[domain.PropertyType]int64{
		domain.PropertyTypeCasa:        3,
		domain.PropertyTypeKitnet:      1,
		domain.PropertyTypeApartamento: 0,
		domain.PropertyTypeQuarto:      0,
	}, stats.ActiveByType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingOrder(t *testing.T) {
	tests := []struct {
		in   string
		col  string
		desc bool
	}{
		{"price", "price", false},
		{"-view_count", "view_count", true},
		{"", "created_at", true},
		{"-password", "created_at", true},
		{"title", "created_at", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			order := listingOrder(tt.in)
			require.Len(t, order.Columns, 2)
			assert.Equal(t, tt.col, order.Columns[0].Column.Name)
			assert.Equal(t, tt.desc, order.Columns[0].Desc)
			assert.Equal(t, "id", order.Columns[1].Column.Name)
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%centro%", likePattern("Centro"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_OFF"))
}

func TestIsDuplicateEntryError(t *testing.T) {
	assert.False(t, isDuplicateEntryError(nil))
	assert.True(t, isDuplicateEntryError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateEntryError(fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062})))
	assert.True(t, isDuplicateEntryError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_username"`)))
	assert.False(t, isDuplicateEntryError(errors.New("connection reset")))
}
