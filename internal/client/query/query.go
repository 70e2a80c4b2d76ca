// Package query turns the console's list state into the query string of
// GET /users. It is pure: no I/O, one call per fetch.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
)

// Parameter names understood by the list endpoint.
const (
	ParamPage     = "page"
	ParamLimit    = "limit"
	ParamOrderBy  = "orderBy"
	ParamOrderDir = "orderDir"
	ParamSearch   = "search"
	ParamStatus   = "status"
)

// Build maps q onto list parameters.
//
// page and limit are always sent. orderBy/orderDir are omitted entirely when
// no sort is active, search when it is empty, and status when the filter is
// "all". Nothing is ever sent as an empty value.
func Build(q models.ListQuery) url.Values {
	q = Normalize(q)

	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(q.Pagination.Page))
	v.Set(ParamLimit, strconv.Itoa(q.Pagination.PageSize))

	if q.Sort.Active() {
		dir := q.Sort.Direction
		if dir != models.SortDesc {
			dir = models.SortAsc
		}
		v.Set(ParamOrderBy, q.Sort.Field)
		v.Set(ParamOrderDir, string(dir))
	}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	if q.Status == models.FilterActive || q.Status == models.FilterInactive {
		v.Set(ParamStatus, string(q.Status))
	}
	return v
}

// Normalize clamps q into a state the server accepts: page at least 1, a
// known page size, trimmed search, and a known status filter.
func Normalize(q models.ListQuery) models.ListQuery {
	if q.Pagination.Page < 1 {
		q.Pagination.Page = models.DefaultPage
	}
	if !models.IsPageSize(q.Pagination.PageSize) {
		q.Pagination.PageSize = models.DefaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	if _, ok := models.ParseStatusFilter(string(q.Status)); !ok {
		q.Status = models.FilterAll
	}
	return q
}
