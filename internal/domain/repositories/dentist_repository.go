package repositories

import (
	"context"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

// DentistRepository defines the operations the backend offers on dentists
type DentistRepository interface {
	List(ctx context.Context) ([]*entities.Dentist, error)
	GetByID(ctx context.Context, id string) (*entities.Dentist, error)
	Create(ctx context.Context, req *entities.CreateDentistRequest) (*entities.Dentist, error)
}
