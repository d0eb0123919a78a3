package repositories

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

// TreatmentRepository defines the operations the backend offers on treatments
type TreatmentRepository interface {
	List(ctx context.Context) ([]*entities.Treatment, error)
	GetByID(ctx context.Context, id string) (*entities.Treatment, error)
	Create(ctx context.Context, req *entities.CreateTreatmentRequest) (*entities.Treatment, error)
}
