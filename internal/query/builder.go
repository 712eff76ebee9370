// Package query translates API query parameters into MongoDB queries.
//
// A Builder composes filtering, sorting, field projection and pagination in
// that fixed order and performs no I/O itself; repositories execute the
// resulting filter and find options.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit caps list results when no explicit limit is given.
	DefaultLimit = 100
	// DefaultSort orders by newest first when no sort is given.
	DefaultSort = "-createdAt"
)

// reserved parameters are control parameters, never filters.
var reserved = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// comparison operators accepted in field[op]=value form.
var operators = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// Builder holds a composed, unexecuted query description.
type Builder struct {
	filter bson.M
	sort   bson.D
	proj   bson.D
	page   int64
	limit  int64
}

// New builds a query from raw URL parameters.
func New(params url.Values) *Builder {
	return NewScoped(params, nil)
}

// NewScoped builds a query pre-filtered by a parent scope, e.g. all reviews of
// one tour on a nested route. Scope entries win over same-named filters from
// the client.
func NewScoped(params url.Values, scope bson.M) *Builder {
	b := &Builder{filter: bson.M{}, page: 1, limit: DefaultLimit}
	b.applyFilter(params)
	b.applySort(params.Get("sort"))
	b.applyFields(params.Get("fields"))
	b.applyPagination(params.Get("page"), params.Get("limit"))
	for k, v := range scope {
		b.filter[k] = v
	}
	return b
}

// applyFilter turns every non-reserved parameter into an equality or
// comparison condition, all ANDed together.
func (b *Builder) applyFilter(params url.Values) {
	for key, values := range params {
		if reserved[key] || len(values) == 0 {
			continue
		}

		field, op := splitOperator(key)
		if op == "" {
			b.filter[field] = coerce(values[0])
			continue
		}

		cond, ok := b.filter[field].(bson.M)
		if !ok {
			cond = bson.M{}
			b.filter[field] = cond
		}
		cond[op] = coerce(values[0])
	}
}

// applySort parses a comma-separated sort list, "-" prefix meaning descending.
func (b *Builder) applySort(sortParam string) {
	if sortParam == "" {
		sortParam = DefaultSort
	}
	for _, key := range strings.Split(sortParam, ",") {
		key = strings.TrimSpace(key)
		dir := 1
		if strings.HasPrefix(key, "-") {
			dir = -1
			key = key[1:]
		}
		// A bare "-" leaves nothing to sort on.
		if key == "" {
			continue
		}
		b.sort = append(b.sort, bson.E{Key: key, Value: dir})
	}
}

// applyFields projects the requested fields, or excludes the internal
// versioning field when no selection is given.
func (b *Builder) applyFields(fieldsParam string) {
	if fieldsParam == "" {
		b.proj = bson.D{{Key: "__v", Value: 0}}
		return
	}
	for _, f := range strings.Split(fieldsParam, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		b.proj = append(b.proj, bson.E{Key: f, Value: 1})
	}
}

// applyPagination coerces page/limit to positive integers with defaults.
// Pages past the end of the collection yield an empty result, not an error.
func (b *Builder) applyPagination(pageParam, limitParam string) {
	if page, err := strconv.ParseInt(pageParam, 10, 64); err == nil && page > 0 {
		b.page = page
	}
	if limit, err := strconv.ParseInt(limitParam, 10, 64); err == nil && limit > 0 {
		b.limit = limit
	}
}

// Filter returns the composed filter document.
func (b *Builder) Filter() bson.M {
	return b.filter
}

// Skip returns the number of documents skipped by pagination.
func (b *Builder) Skip() int64 {
	return (b.page - 1) * b.limit
}

// Limit returns the page size.
func (b *Builder) Limit() int64 {
	return b.limit
}

// Sort returns the composed sort document.
func (b *Builder) Sort() bson.D {
	return b.sort
}

// Projection returns the composed field projection.
func (b *Builder) Projection() bson.D {
	return b.proj
}

// FindOptions assembles the sort, projection and pagination into driver
// options ready to pass to Collection.Find.
func (b *Builder) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(b.sort).
		SetProjection(b.proj).
		SetSkip(b.Skip()).
		SetLimit(b.limit)
}

// splitOperator parses "price[gte]" into ("price", "$gte"). Keys without a
// recognised operator suffix are plain equality filters.
func splitOperator(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	name := key[open+1 : len(key)-1]
	mongoOp, ok := operators[name]
	if !ok {
		return key, ""
	}
	return key[:open], mongoOp
}

// coerce converts a raw parameter into the JSON-ish type Mongo expects:
// numbers and booleans compare numerically, everything else stays a string.
func coerce(raw string) interface{} {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}
