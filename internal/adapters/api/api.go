// Package api implements the domain repositories on top of the dental
// backend's REST endpoints. Every adapter is a thin pass-through: it builds
// the path, delegates to the transport, logs failures and returns them
// unchanged.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zatekoja/dentaldesk/internal/infrastructure/clients/dentalapi"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

// Backend endpoints
const (
	PatientsEndpoint     = "/patients"
	AppointmentsEndpoint = "/appointments"
	DentistsEndpoint     = "/dentists"
	TreatmentsEndpoint   = "/treatments"
	StatsEndpoint        = "/stats"
)

// Requester is the part of the transport the adapters need
type Requester interface {
	Get(ctx context.Context, path string, out interface{}, opts ...dentalapi.RequestOption) error
	Post(ctx context.Context, path string, in, out interface{}, opts ...dentalapi.RequestOption) error
	Put(ctx context.Context, path string, in, out interface{}, opts ...dentalapi.RequestOption) error
	Delete(ctx context.Context, path string, out interface{}, opts ...dentalapi.RequestOption) error
}

var _ Requester = (*dentalapi.Client)(nil)

// resourcePath joins base and an escaped id
func resourcePath(base, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s: id is required", strings.TrimPrefix(base, "/"))
	}
	return base + "/" + url.PathEscape(id), nil
}

func logFailure(ctx context.Context, resource, operation string, err error) *zerolog.Event {
	return observability.LoggerFromContext(ctx).Error().
		Err(err).
		Str("resource", resource).
		Str("operation", operation).
		Str("error_kind", string(apierrors.KindOf(err))).
		Int("status", apierrors.StatusOf(err))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
