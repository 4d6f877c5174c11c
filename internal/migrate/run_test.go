package migrate

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner() *Runner {
	r := NewRunner(nil)
	r.fsys = fstest.MapFS{
		"migrations/0002_second.sql": {Data: []byte("CREATE TABLE b (id INT)")},
		"migrations/0001_first.sql":  {Data: []byte("CREATE TABLE a (id INT)")},
		"migrations/README.md":       {Data: []byte("ignored")},
	}
	return r
}

func TestRunner_Versions_Sorted(t *testing.T) {
	versions, err := newTestRunner().Versions()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_first", "0002_second"}, versions)
}

func TestRunner_EmbeddedMigrationsPresent(t *testing.T) {
	versions, err := NewRunner(nil).Versions()
	require.NoError(t, err)
	assert.Contains(t, versions, "0001_init")
}

func TestRunner_Apply_SkipsRecorded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	existsQ := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(existsQ).WithArgs("0001_first").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(existsQ).WithArgs("0002_second").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES ($1)")).
		WithArgs("0002_second").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := newTestRunner().Apply(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_second"}, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_Apply_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	existsQ := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(existsQ).WithArgs("0001_first").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT)")).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	applied, err := newTestRunner().Apply(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exec migration 0001_first")
	assert.Empty(t, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}
