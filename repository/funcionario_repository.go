package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"funcionarioService/models"
)

// ErrNotFound is returned by write operations when no row matches the given id.
var ErrNotFound = errors.New("funcionario not found")

const (
	rowTimeout  = 3 * time.Second
	listTimeout = 5 * time.Second

	selectColumns = `SELECT id, nome, cargo, salario FROM funcionarios`
)

// FuncionarioRepository performs single-row CRUD against the funcionarios table.
type FuncionarioRepository struct {
	db *sql.DB
}

func NewFuncionarioRepository(db *sql.DB) *FuncionarioRepository {
	return &FuncionarioRepository{db: db}
}

// List returns every row ordered by id. An empty table yields an empty, non-nil slice.
func (r *FuncionarioRepository) List(ctx context.Context) ([]models.Funcionario, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list funcionarios")
	}
	defer rows.Close()
	out := make([]models.Funcionario, 0)
	for rows.Next() {
		var f models.Funcionario
		if err := rows.Scan(&f.ID, &f.Nome, &f.Cargo, &f.Salario); err != nil {
			return nil, errors.Wrap(err, "scan funcionario")
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate funcionarios")
	}
	return out, nil
}

// Count returns the number of stored rows.
func (r *FuncionarioRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM funcionarios`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count funcionarios")
	}
	return n, nil
}

// GetByID returns the row with the given id, or (nil, nil) if there is none.
func (r *FuncionarioRepository) GetByID(ctx context.Context, id int64) (*models.Funcionario, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = ?`, id)
}

// GetByNome returns the first row whose nome matches exactly. When several rows share
// a name the one with the lowest id wins. Returns (nil, nil) if nothing matches.
func (r *FuncionarioRepository) GetByNome(ctx context.Context, nome string) (*models.Funcionario, error) {
	return r.getOne(ctx, selectColumns+` WHERE nome = ? ORDER BY id LIMIT 1`, nome)
}

func (r *FuncionarioRepository) getOne(ctx context.Context, query string, arg any) (*models.Funcionario, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	var f models.Funcionario
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&f.ID, &f.Nome, &f.Cargo, &f.Salario)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get funcionario")
	}
	return &f, nil
}

// Create inserts f and returns the stored row with its assigned id. f.ID is ignored.
func (r *FuncionarioRepository) Create(ctx context.Context, f *models.Funcionario) (*models.Funcionario, error) {
	if f == nil {
		return nil, errors.New("funcionario is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO funcionarios (nome, cargo, salario) VALUES (?,?,?)`,
		f.Nome, f.Cargo, f.Salario)
	if err != nil {
		return nil, errors.Wrap(err, "insert funcionario")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "last insert id")
	}
	return &models.Funcionario{ID: id, Nome: f.Nome, Cargo: f.Cargo, Salario: f.Salario}, nil
}

// Update replaces nome, cargo and salario of the row identified by f.ID.
func (r *FuncionarioRepository) Update(ctx context.Context, f *models.Funcionario) (*models.Funcionario, error) {
	if f == nil {
		return nil, errors.New("funcionario is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE funcionarios SET nome = ?, cargo = ?, salario = ? WHERE id = ?`,
		f.Nome, f.Cargo, f.Salario, f.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "update funcionario %d", f.ID)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}
	out := *f
	return &out, nil
}

// Delete removes the row with the given id permanently.
func (r *FuncionarioRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM funcionarios WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete funcionario %d", id)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
