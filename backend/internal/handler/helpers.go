package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/threadboard/shared/domain"
	"github.com/itchan-dev/threadboard/shared/errors"
)

const dateLayout = "2006-01-02"

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s: must be an integer", paramName))
	}
	return val, nil
}

// idParam reads a positive id from the chi URL parameter key
func idParam(r *http.Request, key string) (int64, error) {
	id, err := parseIntParam(chi.URLParam(r, key), key+" id")
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s id: must be positive", key))
	}
	return id, nil
}

// parsePage reads optional page and size query parameters. Bounds are applied by the services.
func parsePage(r *http.Request) (domain.PageRequest, error) {
	var page domain.PageRequest
	query := r.URL.Query()
	if s := query.Get("page"); s != "" {
		p, err := parseIntParam(s, "page")
		if err != nil {
			return page, err
		}
		page.Page = int(p)
	}
	if s := query.Get("size"); s != "" {
		size, err := parseIntParam(s, "size")
		if err != nil {
			return page, err
		}
		page.Size = int(size)
	}
	return page, nil
}

// parseDate reads a YYYY-MM-DD calendar day as UTC midnight. Empty means unset.
func parseDate(s, paramName string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid %s: expected YYYY-MM-DD", paramName))
	}
	return &t, nil
}
