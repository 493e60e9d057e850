package http

import (
	"barberbook/pkg/config"
	apperrors "barberbook/pkg/errors"
	"net/http"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset), nil
}

// ParseDate reads a YYYY-MM-DD value as local midnight in loc. An empty value
// yields nil.
func ParseDate(value, param string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + param + " parameter, must be YYYY-MM-DD: " + value)
	}
	return &d, nil
}
