package postgres

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoaeadAlhosami/STREETWEER/internal/kvstore"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/database"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/logger"
)

var _ kvstore.Store = (*Store)(nil)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestStore_Get(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs("cart-storage").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"state":{"items":[]},"version":0}`))

	v, ok, err := s.Get(context.Background(), "cart-storage")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"state":{"items":[]},"version":0}`, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_Missing(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs("cart-storage").
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := s.Get(context.Background(), "cart-storage")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_Error(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs("k").
		WillReturnError(errors.New("connection reset by peer"))

	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select kv k")
}

func TestStore_Set(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectExec(regexp.QuoteMeta(upsertValueSQL)).
		WithArgs("cart-storage", "payload").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Set(context.Background(), "cart-storage", "payload"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set_Error(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectExec(regexp.QuoteMeta(upsertValueSQL)).
		WithArgs("k", "v").
		WillReturnError(errors.New("disk full"))

	err := s.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert kv k")
}

func TestStore_Delete(t *testing.T) {
	mock := newMock(t)
	s := New(mock)

	mock.ExpectExec(regexp.QuoteMeta(deleteValueSQL)).
		WithArgs("cart-storage").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, s.Delete(context.Background(), "cart-storage"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations(), ".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "001_create_kv_store.up.sql")
}

func TestMigrate(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("001_create_kv_store.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("001_create_kv_store.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, Migrate(context.Background(), mock, logger.Discard()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_AlreadyApplied(t *testing.T) {
	mock := newMock(t)
	database.ExpectMigrationsApplied(mock, "001_create_kv_store.up.sql")

	require.NoError(t, Migrate(context.Background(), mock, logger.Discard()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
