package repository

import (
	"context"
	"testing"

	"funcionarioService/internal/testutil"
	"funcionarioService/models"
)

func TestFuncionarioRepository_CRUD(t *testing.T) {
	repo := NewFuncionarioRepository(testutil.OpenInMemoryDB(t, "funcrepo_crud"))
	ctx := context.Background()

	// Empty list is non-nil
	list, err := repo.List(ctx)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("empty list: %v %#v", err, list)
	}

	// Create
	f, err := repo.Create(ctx, &models.Funcionario{Nome: "Ana", Cargo: "Dev", Salario: 5000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.ID == 0 || f.Nome != "Ana" || f.Cargo != "Dev" || f.Salario != 5000 {
		t.Fatalf("unexpected created funcionario: %+v", f)
	}

	// GetByID
	g, err := repo.GetByID(ctx, f.ID)
	if err != nil || g == nil || *g != *f {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	// GetByNome
	g2, err := repo.GetByNome(ctx, "Ana")
	if err != nil || g2 == nil || g2.ID != f.ID {
		t.Fatalf("get by nome: %v %+v", err, g2)
	}

	// Update
	upd, err := repo.Update(ctx, &models.Funcionario{ID: f.ID, Nome: "Ana Maria", Cargo: "Lead", Salario: 7500.5})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	g3, _ := repo.GetByID(ctx, f.ID)
	if *g3 != *upd || g3.Cargo != "Lead" {
		t.Fatalf("not updated: %+v", g3)
	}

	// Count
	if n, err := repo.Count(ctx); err != nil || n != 1 {
		t.Fatalf("count: %v %d", err, n)
	}

	// Delete
	if err := repo.Delete(ctx, f.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, err := repo.GetByID(ctx, f.ID)
	if err != nil || gone != nil {
		t.Fatalf("expected funcionario deleted, got: %+v err=%v", gone, err)
	}
}

func TestFuncionarioRepository_MissingRows(t *testing.T) {
	repo := NewFuncionarioRepository(testutil.OpenInMemoryDB(t, "funcrepo_missing"))
	ctx := context.Background()

	if got, err := repo.GetByID(ctx, 42); err != nil || got != nil {
		t.Fatalf("GetByID missing: %+v %v", got, err)
	}
	if got, err := repo.GetByNome(ctx, "ninguem"); err != nil || got != nil {
		t.Fatalf("GetByNome missing: %+v %v", got, err)
	}
	if _, err := repo.Update(ctx, &models.Funcionario{ID: 42, Nome: "x", Cargo: "y", Salario: 1}); err != ErrNotFound {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, 42); err != ErrNotFound {
		t.Fatalf("Delete missing: expected ErrNotFound, got %v", err)
	}
}

func TestFuncionarioRepository_GetByNomeLowestIDWins(t *testing.T) {
	repo := NewFuncionarioRepository(testutil.OpenInMemoryDB(t, "funcrepo_tiebreak"))
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.Funcionario{Nome: "Joao", Cargo: "Dev", Salario: 1})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Funcionario{Nome: "Joao", Cargo: "QA", Salario: 2}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := repo.GetByNome(ctx, "Joao")
	if err != nil || got == nil || got.ID != first.ID {
		t.Fatalf("expected lowest id %d, got %+v err=%v", first.ID, got, err)
	}
}

func TestFuncionarioRepository_ListOrderedByID(t *testing.T) {
	repo := NewFuncionarioRepository(testutil.OpenInMemoryDB(t, "funcrepo_list"))
	ctx := context.Background()

	for _, nome := range []string{"C", "A", "B"} {
		if _, err := repo.Create(ctx, &models.Funcionario{Nome: nome, Cargo: "Dev", Salario: 10}); err != nil {
			t.Fatalf("create %s: %v", nome, err)
		}
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("list not ordered by id: %+v", list)
		}
	}
	if list[0].Nome != "C" {
		t.Fatalf("expected insertion order, got %+v", list)
	}
}
