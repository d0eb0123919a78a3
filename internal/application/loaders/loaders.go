package loaders

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders resolves dentist and treatment references for one unit of work.
// The backend has no batch lookup, so each batch is served from one list call.
type Loaders struct {
	DentistLoader   *dataloader.Loader[string, *entities.Dentist]
	TreatmentLoader *dataloader.Loader[string, *entities.Treatment]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(dentistRepo repositories.DentistRepository, treatmentRepo repositories.TreatmentRepository) *Loaders {
	return &Loaders{
		DentistLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Dentist] {
			dentists, err := dentistRepo.List(ctx)
			return batchResults(keys, dentists, err, func(d *entities.Dentist) string { return d.ID }, "dentist")
		}),
		TreatmentLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Treatment] {
			treatments, err := treatmentRepo.List(ctx)
			return batchResults(keys, treatments, err, func(t *entities.Treatment) string { return t.ID }, "treatment")
		}),
	}
}

func batchResults[T any](keys []string, items []T, err error, idOf func(T) string, kind string) []*dataloader.Result[T] {
	results := make([]*dataloader.Result[T], len(keys))

	byID := make(map[string]T, len(items))
	if err == nil {
		for _, item := range items {
			byID[idOf(item)] = item
		}
	}

	for i, key := range keys {
		if err != nil {
			results[i] = &dataloader.Result[T]{Error: err}
		} else if item, ok := byID[key]; ok {
			results[i] = &dataloader.Result[T]{Data: item}
		} else {
			results[i] = &dataloader.Result[T]{Error: fmt.Errorf("%s %s not found", kind, key)}
		}
	}
	return results
}

// LoadDentists resolves ids in one batch. Results and errors are positional.
func (l *Loaders) LoadDentists(ctx context.Context, ids []string) ([]*entities.Dentist, []error) {
	return l.DentistLoader.LoadMany(ctx, ids)()
}

// LoadTreatments resolves ids in one batch. Results and errors are positional.
func (l *Loaders) LoadTreatments(ctx context.Context, ids []string) ([]*entities.Treatment, []error) {
	return l.TreatmentLoader.LoadMany(ctx, ids)()
}

// For returns the loaders attached to ctx, or nil
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}
