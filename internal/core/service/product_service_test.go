package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID      map[string]*domain.Product
	seq       int
	createErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("p%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.ProductInput{Name: "Martillo", Description: "16oz", Price: 12.5, Stock: 30})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", created)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Martillo" || got.Stock != 30 {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductService_Validation(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())

	for _, in := range []ports.ProductInput{
		{Name: "", Price: 1},
		{Name: "Clavos", Price: -1},
		{Name: "Clavos", Price: 1, Stock: -3},
	} {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestProductService_Update(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())
	ctx := context.Background()

	created, _ := svc.Create(ctx, ports.ProductInput{Name: "Sierra", Price: 20, Stock: 2})
	updated, err := svc.Update(ctx, created.ID, ports.ProductInput{Name: "Sierra circular", Price: 99, Stock: 1})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Sierra circular" || updated.Price != 99 {
		t.Fatalf("unexpected product: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must be preserved")
	}

	if _, err := svc.Update(ctx, "missing", ports.ProductInput{Name: "x"}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())
	ctx := context.Background()

	created, _ := svc.Create(ctx, ports.ProductInput{Name: "Taladro", Price: 50})
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestProductService_CreateRepoError(t *testing.T) {
	repo := newStubProductRepo()
	repo.createErr = errors.New("write concern")
	svc := NewProductService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.ProductInput{Name: "Lija", Price: 1}); err == nil {
		t.Fatalf("expected error")
	}
}
