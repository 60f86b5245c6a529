package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := Open("file:dbopen?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	version, err := CurrentVersion(d)
	require.NoError(t, err)
	require.Equal(t, 1, version)

	var name string
	err = d.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'funcionarios'`).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "funcionarios", name)
}

func TestOpen_IsIdempotent(t *testing.T) {
	first, err := Open("file:dbreopen?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })

	// Second handle on the same shared in-memory DB must not re-run applied scripts.
	second, err := Open("file:dbreopen?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var count int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestRollbackLast(t *testing.T) {
	d, err := Open("file:dbrollback?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, RollbackLast(d))

	version, err := CurrentVersion(d)
	require.NoError(t, err)
	require.Zero(t, version)

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'funcionarios'`).Scan(&n))
	require.Zero(t, n)

	// Nothing left to roll back.
	require.NoError(t, RollbackLast(d))
}

func TestAutoincrementNeverReusesIDs(t *testing.T) {
	d, err := Open("file:dbautoinc?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	res, err := d.Exec(`INSERT INTO funcionarios (nome, cargo, salario) VALUES ('Ana', 'Dev', 1)`)
	require.NoError(t, err)
	first, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = d.Exec(`DELETE FROM funcionarios WHERE id = ?`, first)
	require.NoError(t, err)

	res, err = d.Exec(`INSERT INTO funcionarios (nome, cargo, salario) VALUES ('Bia', 'QA', 2)`)
	require.NoError(t, err)
	second, err := res.LastInsertId()
	require.NoError(t, err)
	require.Greater(t, second, first)
}
