package app

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/database"
	"github.com/evan-wu/phoenix-jdbc-shell/internal/render"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	connectErr error
	queryErr   error
	execErr    error
	columns    []database.Column
	rows       []database.Row
	affected   int64
	tables     []string

	queries []string
	execs   []string
	closed  bool
}

func (d *fakeDriver) Connect(context.Context, string) error { return d.connectErr }

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDriver) Query(_ context.Context, q string) (database.Rows, error) {
	d.queries = append(d.queries, q)
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	return database.FromSlice(d.columns, d.rows), nil
}

func (d *fakeDriver) Exec(_ context.Context, stmt string) (int64, error) {
	d.execs = append(d.execs, stmt)
	return d.affected, d.execErr
}

func (d *fakeDriver) ListTables(context.Context) ([]string, error) { return d.tables, nil }

func (d *fakeDriver) DatabaseName() string { return "fake" }

func newTestService(d database.Driver, settings Settings) (*Service, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewService(d, logger, settings), hook
}

func TestExecuteQuery(t *testing.T) {
	d := &fakeDriver{
		columns: []database.Column{{Label: "ID", DisplayWidth: 4}, {Label: "NAME", DisplayWidth: 10}},
		rows: []database.Row{
			{{String: "1", Valid: true}, {String: "Alice", Valid: true}},
			{{String: "2", Valid: true}, {String: "Bob", Valid: true}},
		},
	}
	svc, hook := newTestService(d, Settings{})

	res, err := svc.Execute(context.Background(), "SELECT * FROM people")
	require.NoError(t, err)
	assert.False(t, res.Update)
	assert.EqualValues(t, 2, res.RowCount)
	assert.Contains(t, res.Output, "|   ID |       NAME |\n")
	assert.Regexp(t, `^2 rows executed in \(\d+ milliseconds\)$`, res.Summary())
	assert.Equal(t, []string{"SELECT * FROM people"}, d.queries)
	assert.Empty(t, d.execs)

	var messages []string
	for _, e := range hook.AllEntries() {
		assert.Equal(t, res.ID.String(), e.Data["stmt"])
		messages = append(messages, e.Message)
	}
	assert.Equal(t, "Executing sql SELECT * FROM people", messages[0])
	assert.Equal(t, "\n"+res.Output, messages[1])
	assert.Equal(t, res.Summary(), messages[2])
}

func TestExecuteQueryPruned(t *testing.T) {
	d := &fakeDriver{
		columns: []database.Column{{Label: "A", DisplayWidth: 3}, {Label: "B", DisplayWidth: 3}},
		rows: []database.Row{
			{{}, {String: "x", Valid: true}},
			{{}, {String: "y", Valid: true}},
		},
	}
	svc, _ := newTestService(d, Settings{Render: render.Options{PruneAllNullColumns: true}})

	res, err := svc.Execute(context.Background(), "SELECT a, b FROM t")
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.RowCount)
	assert.NotContains(t, res.Output, "A")
	assert.Contains(t, res.Output, "|   B |")
}

func TestExecuteUpdate(t *testing.T) {
	d := &fakeDriver{affected: 3}
	svc, _ := newTestService(d, Settings{})

	res, err := svc.Execute(context.Background(), "DROP TABLE x")
	require.NoError(t, err)
	assert.True(t, res.Update)
	assert.Empty(t, res.Output)
	assert.EqualValues(t, 3, res.RowCount)
	assert.True(t, strings.HasPrefix(res.Summary(), "3 rows updated in ("))
	assert.Equal(t, []string{"DROP TABLE x"}, d.execs)
	assert.Empty(t, d.queries, "mutating statements never reach the renderer")
}

func TestExecuteErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		desc   string
		driver *fakeDriver
		stmt   string
	}{
		{"query", &fakeDriver{queryErr: boom}, "SELECT 1"},
		{"exec", &fakeDriver{execErr: boom}, "delete from t"},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			svc, hook := newTestService(tc.driver, Settings{})
			res, err := svc.Execute(context.Background(), tc.stmt)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, boom)

			var qErr *ErrQuery
			require.ErrorAs(t, err, &qErr)
			assert.Equal(t, tc.stmt, qErr.Query)
			assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		})
	}
}

func TestExecuteRenderFailure(t *testing.T) {
	d := &fakeDriver{
		columns: []database.Column{{Label: "A", DisplayWidth: 1}, {Label: "B", DisplayWidth: 1}},
		rows:    []database.Row{{sql.NullString{}}},
	}
	svc, _ := newTestService(d, Settings{})

	_, err := svc.Execute(context.Background(), "SELECT a, b FROM t")
	var readErr *render.ErrCursorRead
	assert.ErrorAs(t, err, &readErr)
}

func TestConnect(t *testing.T) {
	boom := errors.New("refused")
	svc, _ := newTestService(&fakeDriver{connectErr: boom}, Settings{})
	err := svc.Connect(context.Background(), "postgresql://localhost/db", "localhost/db")

	var connErr *ErrConnection
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "localhost/db", connErr.Target)
	assert.ErrorIs(t, err, boom)

	d := &fakeDriver{}
	svc, _ = newTestService(d, Settings{})
	require.NoError(t, svc.Connect(context.Background(), "postgresql://localhost/db", "localhost/db"))
	assert.Equal(t, "localhost/db", svc.Target())
	require.NoError(t, svc.Disconnect())
	assert.True(t, d.closed)
}

func TestListTables(t *testing.T) {
	d := &fakeDriver{tables: []string{"public.orders", "public.customer_addresses"}}
	svc, _ := newTestService(d, Settings{})

	res, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.RowCount)

	lines := strings.Split(res.Output, "\n")
	assert.Equal(t, "+"+strings.Repeat("-", len("public.customer_addresses")+2)+"+", lines[0])
	assert.Contains(t, res.Output, "| public.customer_addresses |")
}

func TestListTablesWideNames(t *testing.T) {
	d := &fakeDriver{tables: []string{"public.注文明細テーブル", "t"}}
	svc, _ := newTestService(d, Settings{})

	res, err := svc.ListTables(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(res.Output, "\n"), "\n")
	require.Len(t, lines, 6)
	want := utf8.RuneCountInString(lines[0])
	for _, line := range lines {
		assert.Equal(t, want, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, res.Output, "| public.注文明細テーブル |")
}
