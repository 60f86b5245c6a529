package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"funcionarioService/models"
)

func newMockRepo(t *testing.T) (*FuncionarioRepository, sqlmock.Sqlmock) {
	t.Helper()
	d, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return NewFuncionarioRepository(d), mock
}

func TestFuncionarioRepository_WrapsDriverErrors(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, nome, cargo, salario FROM funcionarios ORDER BY id`)).
		WillReturnError(boom)
	_, err := repo.List(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "list funcionarios")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO funcionarios`)).
		WithArgs("Ana", "Dev", 5000.0).
		WillReturnError(boom)
	_, err = repo.Create(context.Background(), &models.Funcionario{Nome: "Ana", Cargo: "Dev", Salario: 5000})
	require.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFuncionarioRepository_UpdateUsesRowsAffected(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE funcionarios SET nome = ?, cargo = ?, salario = ? WHERE id = ?`)).
		WithArgs("Ana", "Dev", 1.5, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, err := repo.Update(context.Background(), &models.Funcionario{ID: 7, Nome: "Ana", Cargo: "Dev", Salario: 1.5})
	require.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM funcionarios WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 7))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFuncionarioRepository_CreateNil(t *testing.T) {
	repo, _ := newMockRepo(t)
	_, err := repo.Create(context.Background(), nil)
	require.Error(t, err)
}
