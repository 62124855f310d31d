package client

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotta-app/SlottaService/internal/domain"
)

// captureConn перехватывает сгенерированный запрос и связанные аргументы,
// отвечая одной строкой RETURNING (id, created_at, updated_at)
type captureConn struct {
	query string
	args  []driver.NamedValue
}

func (c *captureConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not supported")
}

func (c *captureConn) Close() error { return nil }

func (c *captureConn) Begin() (driver.Tx, error) {
	return nil, errors.New("not supported")
}

func (c *captureConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.query = query
	c.args = args
	return &returningRows{}, nil
}

type returningRows struct {
	done bool
}

func (r *returningRows) Columns() []string { return []string{"id", "created_at", "updated_at"} }
func (r *returningRows) Close() error { return nil }

func (r *returningRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = int64(55)
	dest[1] = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	dest[2] = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return nil
}

type captureConnector struct {
	conn *captureConn
}

func (c *captureConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *captureConnector) Driver() driver.Driver { return nil }

func TestCreate_BindsNullPhone(t *testing.T) {
	conn := &captureConn{}
	repo := NewRepository(sql.OpenDB(&captureConnector{conn: conn}))

	created, err := repo.Create(context.Background(), &domain.Client{
		Email: "new@client.test",
		Name:  "New Client",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), created.ID)
	assert.Equal(t, domain.ReliabilityNew, created.Reliability)

	// Автосозданный клиент приходит без телефона, колонка обязана
	// принимать NULL
	start := strings.Index(conn.query, "(")
	end := strings.Index(conn.query, ")")
	require.True(t, start >= 0 && end > start, "query has no column list: %s", conn.query)

	for i, col := range strings.Split(conn.query[start+1:end], ",") {
		if strings.TrimSpace(col) == "phone" {
			require.Less(t, i, len(conn.args))
			assert.Nil(t, conn.args[i].Value)
			return
		}
	}
	t.Fatalf("phone not in insert list: %s", conn.query)
}

func TestSchema_PhoneColumnNullable(t *testing.T) {
	schema, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)

	for _, line := range strings.Split(string(schema), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "phone" {
			assert.NotContains(t, line, "NOT NULL",
				"phone is bound from a nil-able field and must accept NULL")
			return
		}
	}
	t.Fatal("phone column not found in schema")
}
