package cli

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gynecare/internal/client/client"
	"github.com/dmitrijs2005/gynecare/internal/client/services"
	"github.com/dmitrijs2005/gynecare/internal/client/validation"
)

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgUnavailable    = "Cannot reach the server. Check your connection and try again."
	msgLoginFirst     = "Please log in first."
)

// userMessage turns any error returned by the services into text for the
// terminal.
func userMessage(err error) string {
	var (
		verr   *validation.ValidationError
		aerr   *services.AuthError
		apiErr *client.APIError
	)

	switch {
	case errors.As(err, &verr):
		return validationMessage(verr)
	case errors.Is(err, client.ErrUnavailable):
		return msgUnavailable
	case errors.As(err, &aerr):
		return aerr.Message
	case errors.Is(err, client.ErrAuthenticationExpired):
		return msgSessionExpired
	case errors.Is(err, services.ErrNotAuthenticated):
		return msgLoginFirst
	case errors.As(err, &apiErr):
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
		if apiErr.StatusCode == http.StatusNotFound {
			return "Not found."
		}
		return fmt.Sprintf("Request failed (%d %s).", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
	default:
		return "Error: " + err.Error()
	}
}

func validationMessage(verr *validation.ValidationError) string {
	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("Please correct the following:")
	for _, f := range fields {
		for _, msg := range verr.Fields[f] {
			b.WriteString("\n  - ")
			b.WriteString(msg)
		}
	}
	return b.String()
}
