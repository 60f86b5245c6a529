package repository

import (
	"context"

	"funcionarioService/models"
)

// FuncionarioStore defines operations on Funcionario records.
type FuncionarioStore interface {
	List(ctx context.Context) ([]models.Funcionario, error)
	GetByID(ctx context.Context, id int64) (*models.Funcionario, error)
	GetByNome(ctx context.Context, nome string) (*models.Funcionario, error)
	Create(ctx context.Context, f *models.Funcionario) (*models.Funcionario, error)
	Update(ctx context.Context, f *models.Funcionario) (*models.Funcionario, error)
	Delete(ctx context.Context, id int64) error
}

var _ FuncionarioStore = (*FuncionarioRepository)(nil)
