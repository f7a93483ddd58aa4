package handlers

import (
	"strconv"
	"strings"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type listQueryParams struct {
	Skip  int
	Limit int
}

// parseListQueryParams reads skip/limit query values, falling back to sane
// defaults and clamping the page size.
func parseListQueryParams(rawSkip, rawLimit string) listQueryParams {
	limit := defaultPageLimit
	if parsedLimit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && parsedLimit > 0 {
		limit = parsedLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	skip := 0
	if parsedSkip, err := strconv.Atoi(strings.TrimSpace(rawSkip)); err == nil && parsedSkip >= 0 {
		skip = parsedSkip
	}

	return listQueryParams{Skip: skip, Limit: limit}
}
