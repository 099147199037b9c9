package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resumai/internal/models"
)

// recordingDB is a database/sql connector that records every statement and
// answers from canned rows.
type recordingDB struct {
	mu           sync.Mutex
	statements   []string
	args         [][]driver.NamedValue
	deletedRows  int64
	sessionRows  [][]driver.Value
	historyRows  [][]driver.Value
	sessionCount int64
}

func (d *recordingDB) Connect(context.Context) (driver.Conn, error) { return &recordingConn{db: d}, nil }
func (d *recordingDB) Driver() driver.Driver                        { return recordingDriver{db: d} }

func (d *recordingDB) record(query string, args []driver.NamedValue) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statements = append(d.statements, query)
	d.args = append(d.args, args)
}

func (d *recordingDB) recorded() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.statements...)
}

type recordingDriver struct{ db *recordingDB }

func (r recordingDriver) Open(string) (driver.Conn, error) { return &recordingConn{db: r.db}, nil }

type recordingConn struct{ db *recordingDB }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	c.db.record("BEGIN", nil)
	return recordingTx{db: c.db}, nil
}

func (c *recordingConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.db.record(query, args)
	if strings.Contains(query, `"sessions"`) {
		return driver.RowsAffected(c.db.deletedRows), nil
	}
	return driver.RowsAffected(2), nil
}

func (c *recordingConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.db.record(query, args)
	switch {
	case strings.Contains(query, "count("):
		return &staticRows{columns: []string{"count"}, values: [][]driver.Value{{c.db.sessionCount}}}, nil
	case strings.Contains(query, `"session_history"`):
		return &staticRows{
			columns: []string{"id", "session_id", "action", "details", "created_at"},
			values:  c.db.historyRows,
		}, nil
	default:
		return &staticRows{
			columns: []string{"id", "profile_name", "created_at", "updated_at"},
			values:  c.db.sessionRows,
		}, nil
	}
}

type recordingTx struct{ db *recordingDB }

func (t recordingTx) Commit() error   { t.db.record("COMMIT", nil); return nil }
func (t recordingTx) Rollback() error { t.db.record("ROLLBACK", nil); return nil }

type staticRows struct {
	columns []string
	values  [][]driver.Value
	pos     int
}

func (r *staticRows) Columns() []string { return r.columns }
func (r *staticRows) Close() error      { return nil }

func (r *staticRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.pos])
	r.pos++
	return nil
}

func newRecordingRepository(t *testing.T, db *recordingDB) SessionRepository {
	t.Helper()

	sqlDB := sql.OpenDB(db)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewSessionRepository(gdb)
}

func TestSessionRepositoryDeleteRunsInTransaction(t *testing.T) {
	db := &recordingDB{deletedRows: 1}
	repo := newRecordingRepository(t, db)
	id := uuid.New()

	require.NoError(t, repo.Delete(id))

	statements := db.recorded()
	require.Len(t, statements, 4)
	assert.Equal(t, "BEGIN", statements[0])
	assert.Contains(t, statements[1], `DELETE FROM "session_history"`)
	assert.Contains(t, statements[2], `DELETE FROM "sessions"`)
	assert.Equal(t, "COMMIT", statements[3])
	assert.Equal(t, id.String(), db.args[1][0].Value)
	assert.Equal(t, id.String(), db.args[2][0].Value)
}

func TestSessionRepositoryDeleteUnknownRollsBack(t *testing.T) {
	db := &recordingDB{deletedRows: 0}
	repo := newRecordingRepository(t, db)

	assert.ErrorIs(t, repo.Delete(uuid.New()), ErrSessionNotFound)

	statements := db.recorded()
	require.Len(t, statements, 4)
	assert.Equal(t, "BEGIN", statements[0])
	assert.Equal(t, "ROLLBACK", statements[3])
}

func TestSessionRepositoryFindByIDLoadsHistoryNewestFirst(t *testing.T) {
	id := uuid.New()
	earlier := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	db := &recordingDB{
		sessionRows: [][]driver.Value{{id.String(), "Jane Doe", earlier, later}},
		historyRows: [][]driver.Value{
			{int64(2), id.String(), models.ActionATSScan, "Score: 70%", later},
			{int64(1), id.String(), models.ActionGeneratedResume, "Jane Doe", earlier},
		},
	}
	repo := newRecordingRepository(t, db)

	session, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, session.ID)
	assert.Equal(t, "Jane Doe", session.Profile.Name)
	require.Len(t, session.History, 2)
	assert.Equal(t, models.ActionATSScan, session.History[0].Action)
	assert.Equal(t, models.ActionGeneratedResume, session.History[1].Action)

	statements := db.recorded()
	require.Len(t, statements, 2)
	assert.Contains(t, statements[1], `"session_history"`)
	assert.Contains(t, statements[1], "ORDER BY created_at DESC, id DESC")
}

func TestSessionRepositoryFindByIDNotFound(t *testing.T) {
	repo := newRecordingRepository(t, &recordingDB{})

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepositoryAppendHistoryUnknownSession(t *testing.T) {
	db := &recordingDB{sessionCount: 0}
	repo := newRecordingRepository(t, db)

	err := repo.AppendHistory(uuid.New(), models.ActionATSScan, "Score: 10%")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	statements := db.recorded()
	require.Len(t, statements, 1)
	assert.Contains(t, statements[0], "count(")
}
