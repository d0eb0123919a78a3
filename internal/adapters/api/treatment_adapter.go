package api

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
	"github.com/zatekoja/dentaldesk/internal/domain/repositories"
)

// TreatmentAdapter implements TreatmentRepository against /treatments
type TreatmentAdapter struct {
	client Requester
}

// NewTreatmentAdapter creates a new treatment adapter
func NewTreatmentAdapter(client Requester) repositories.TreatmentRepository {
	return &TreatmentAdapter{client: client}
}

func (a *TreatmentAdapter) List(ctx context.Context) ([]*entities.Treatment, error) {
	var treatments []*entities.Treatment
	if err := a.client.Get(ctx, TreatmentsEndpoint, &treatments); err != nil {
		logFailure(ctx, "treatments", "list", err).Msg("Error fetching all treatments")
		return nil, err
	}
	return nonNil(treatments), nil
}

func (a *TreatmentAdapter) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	path, err := resourcePath(TreatmentsEndpoint, id)
	if err != nil {
		return nil, err
	}

	var treatment entities.Treatment
	if err := a.client.Get(ctx, path, &treatment); err != nil {
		logFailure(ctx, "treatments", "get", err).Str("treatment_id", id).Msg("Error fetching treatment")
		return nil, err
	}
	return &treatment, nil
}

func (a *TreatmentAdapter) Create(ctx context.Context, req *entities.CreateTreatmentRequest) (*entities.Treatment, error) {
	var treatment entities.Treatment
	if err := a.client.Post(ctx, TreatmentsEndpoint, req, &treatment); err != nil {
		logFailure(ctx, "treatments", "create", err).Str("name", req.Name).Msg("Error adding treatment")
		return nil, err
	}
	return &treatment, nil
}
