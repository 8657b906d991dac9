package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError normalizes a non-2xx response into a *models.APIError wrapped
// with the transport sentinel for its status code. The user-facing message is
// the server's top-level `error` field when the body parses, else the raw
// body, else the standard status text.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := normalizeBody(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w", ErrBadRequest, apiErr)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrForbidden, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w", ErrConflict, apiErr)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %w", ErrBadGateway, apiErr)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %w", ErrInternalServerError, apiErr)
	default:
		return fmt.Errorf("http %d: %w", resp.StatusCode(), apiErr)
	}
}

func normalizeBody(resp *resty.Response) *models.APIError {
	body := strings.TrimSpace(string(resp.Body()))

	apiErr := &models.APIError{
		StatusCode: resp.StatusCode(),
		Body:       body,
	}

	var parsed models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err == nil && parsed.Error != "" {
		apiErr.Message = parsed.Error
		apiErr.Fields = parsed.Errors
		return apiErr
	}

	if body != "" {
		apiErr.Message = body
		return apiErr
	}

	apiErr.Message = http.StatusText(resp.StatusCode())
	return apiErr
}
