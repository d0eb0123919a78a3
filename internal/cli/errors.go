package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

// Exit codes by failure kind
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitValidation = 3
	ExitAPI        = 4
	ExitNetwork    = 5
)

// ExitCode maps err onto a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	}

	var validation *apierrors.ValidationError
	var api *apierrors.APIError
	var network *apierrors.NetworkError
	switch {
	case errors.As(err, &network):
		return ExitNetwork
	case errors.As(err, &validation):
		return ExitValidation
	case errors.As(err, &api):
		return ExitAPI
	}
	return ExitFailure
}

// Report writes a user-facing description of err, field errors included
func Report(w io.Writer, err error) {
	if err == nil || errors.Is(err, ErrUsage) {
		return
	}

	switch apierrors.KindOf(err) {
	case apierrors.ErrorTypeValidation:
		fmt.Fprintf(w, "Invalid input: %s\n", err)
		fields := apierrors.FieldErrors(err)
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, strings.Join(fields[name], "; "))
		}
	case apierrors.ErrorTypeAPI:
		var api *apierrors.APIError
		if errors.As(err, &api) {
			fmt.Fprintf(w, "Request rejected (HTTP %d): %s\n", api.Status, api.Message)
			return
		}
		fmt.Fprintf(w, "Request rejected: %s\n", err)
	case apierrors.ErrorTypeNetwork:
		var network *apierrors.NetworkError
		if errors.As(err, &network) {
			fmt.Fprintf(w, "Could not reach the dental API: %s\n", err)
			return
		}
		fmt.Fprintf(w, "Error: %s\n", err)
	default:
		fmt.Fprintf(w, "Error: %s\n", err)
	}
}
