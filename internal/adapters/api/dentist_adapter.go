package api

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// DentistAdapter implements DentistRepository against /dentists
type DentistAdapter struct {
	client Requester
}

// NewDentistAdapter creates a new dentist adapter
func NewDentistAdapter(client Requester) repositories.DentistRepository {
	return &DentistAdapter{client: client}
}

func (a *DentistAdapter) List(ctx context.Context) ([]*entities.Dentist, error) {
	var dentists []*entities.Dentist
	if err := a.client.Get(ctx, DentistsEndpoint, &dentists); err != nil {
		logFailure(ctx, "dentists", "list", err).Msg("Error fetching all dentists")
		return nil, err
	}
	return nonNil(dentists), nil
}

func (a *DentistAdapter) GetByID(ctx context.Context, id string) (*entities.Dentist, error) {
	path, err := resourcePath(DentistsEndpoint, id)
	if err != nil {
		return nil, err
	}

	var dentist entities.Dentist
	if err := a.client.Get(ctx, path, &dentist); err != nil {
		logFailure(ctx, "dentists", "get", err).Str("dentist_id", id).Msg("Error fetching dentist")
		return nil, err
	}
	return &dentist, nil
}

func (a *DentistAdapter) Create(ctx context.Context, req *entities.CreateDentistRequest) (*entities.Dentist, error) {
	var dentist entities.Dentist
	if err := a.client.Post(ctx, DentistsEndpoint, req, &dentist); err != nil {
		logFailure(ctx, "dentists", "create", err).Str("name", req.Name).Msg("Error adding dentist")
		return nil, err
	}
	return &dentist, nil
}
