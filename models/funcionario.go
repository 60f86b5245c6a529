package models

// Funcionario is an employee record.
// It maps to the `funcionarios` table in SQLite.
type Funcionario struct {
	ID      int64   `db:"id" json:"id"`
	Nome    string  `db:"nome" json:"nome"`
	Cargo   string  `db:"cargo" json:"cargo"`
	Salario float64 `db:"salario" json:"salario"`
}
