package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/dentaldesk/internal/domain/entities"
)

// Mocks

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) List(ctx context.Context) ([]*entities.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Search(ctx context.Context, query string) ([]*entities.Patient, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Create(ctx context.Context, req *entities.NewPatientRequest) (*entities.Patient, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Update(ctx context.Context, id string, req *entities.UpdatePatientRequest) (*entities.Patient, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Patient), args.Error(1)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) appointments(args mock.Arguments) ([]*entities.Appointment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) appointment(args mock.Arguments) (*entities.Appointment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context) ([]*entities.Appointment, error) {
	return m.appointments(m.Called(ctx))
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return m.appointment(m.Called(ctx, id))
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	return m.appointments(m.Called(ctx, patientID))
}

func (m *MockAppointmentRepository) ListUpcoming(ctx context.Context) ([]*entities.Appointment, error) {
	return m.appointments(m.Called(ctx))
}

func (m *MockAppointmentRepository) ListToday(ctx context.Context) ([]*entities.Appointment, error) {
	return m.appointments(m.Called(ctx))
}

func (m *MockAppointmentRepository) Create(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error) {
	return m.appointment(m.Called(ctx, req))
}

func (m *MockAppointmentRepository) Update(ctx context.Context, req *entities.UpdateAppointmentRequest) (*entities.Appointment, error) {
	return m.appointment(m.Called(ctx, req))
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockDentistRepository struct {
	mock.Mock
}

func (m *MockDentistRepository) List(ctx context.Context) ([]*entities.Dentist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Dentist), args.Error(1)
}

func (m *MockDentistRepository) GetByID(ctx context.Context, id string) (*entities.Dentist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dentist), args.Error(1)
}

func (m *MockDentistRepository) Create(ctx context.Context, req *entities.CreateDentistRequest) (*entities.Dentist, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dentist), args.Error(1)
}

type MockTreatmentRepository struct {
	mock.Mock
}

func (m *MockTreatmentRepository) List(ctx context.Context) ([]*entities.Treatment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) Create(ctx context.Context, req *entities.CreateTreatmentRequest) (*entities.Treatment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Treatment), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context) (*entities.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Stats), args.Error(1)
}
