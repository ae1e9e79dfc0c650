package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
)

func newMockRepository(t *testing.T) (*postgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return newRepository(gormDB, gormDB), mock
}

func TestWithTenantScope_SetsSearchPathAndCommits(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "acme"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "a_home_item"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Widget").AddRow(2, "Gadget"))
	mock.ExpectCommit()

	var items []domain.Item
	err := repo.WithTenantScope(context.Background(), "acme", func(ctx context.Context) error {
		assert.Equal(t, "acme", tenant.ActiveSchema(ctx))

		var err error
		items, err = repo.Item().List(ctx)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: 1, Name: "Widget"}, {ID: 2, Name: "Gadget"}}, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTenantScope_QuotesSchemaIdentifier(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "evil""; DROP SCHEMA public; --"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.WithTenantScope(context.Background(), `evil"; DROP SCHEMA public; --`, func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTenantScope_RollsBackOnError(t *testing.T) {
	repo, mock := newMockRepository(t)
	opErr := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "acme"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	ctx := context.Background()
	err := repo.WithTenantScope(ctx, "acme", func(ctx context.Context) error {
		return opErr
	})

	assert.ErrorIs(t, err, opErr)
	assert.Equal(t, tenant.DefaultSchema, tenant.ActiveSchema(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTenantScope_RollsBackOnPanic(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "acme"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = repo.WithTenantScope(context.Background(), "acme", func(ctx context.Context) error {
			panic("op panicked")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTenantScope_UnknownSchemaFailsAtFirstQuery(t *testing.T) {
	repo, mock := newMockRepository(t)
	missing := errors.New(`relation "a_home_item" does not exist`)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "ghost"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "a_home_item"`)).WillReturnError(missing)
	mock.ExpectRollback()

	err := repo.WithTenantScope(context.Background(), "ghost", func(ctx context.Context) error {
		_, err := repo.Item().List(ctx)
		return err
	})

	assert.ErrorIs(t, err, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTenantScope_EmptySchema(t *testing.T) {
	repo, mock := newMockRepository(t)

	err := repo.WithTenantScope(context.Background(), "", func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, tenant.ErrEmptySchema)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_OutsideScope(t *testing.T) {
	repo, _ := newMockRepository(t)

	_, err := repo.Item().List(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotScoped)
}

func TestItemRepository_GetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "acme"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "a_home_item" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectRollback()

	err := repo.WithTenantScope(context.Background(), "acme", func(ctx context.Context) error {
		_, err := repo.Item().GetByID(ctx, 99)
		return err
	})

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_CreateAndUpdate(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "acme"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "a_home_item" ("name") VALUES ($1) RETURNING "id"`)).
		WithArgs("Widget").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "a_home_item" SET "name"=$1 WHERE id = $2`)).
		WithArgs("Gizmo", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	item := &domain.Item{Name: "Widget"}
	err := repo.WithTenantScope(context.Background(), "acme", func(ctx context.Context) error {
		if err := repo.Item().Create(ctx, item); err != nil {
			return err
		}
		item.Name = "Gizmo"
		return repo.Item().Update(ctx, item)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SET LOCAL search_path TO "acme"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "auth_user" WHERE username = $1`)).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "is_active"}).
			AddRow(3, "alice", "hash", true))
	mock.ExpectCommit()

	var user *domain.User
	err := repo.WithTenantScope(context.Background(), "acme", func(ctx context.Context) error {
		var err error
		user, err = repo.User().GetByUsername(ctx, "alice")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.True(t, user.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
