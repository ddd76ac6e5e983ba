package services

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nejmigmc-soft/landmarkweb/models"
	"github.com/nejmigmc-soft/landmarkweb/utils"
)

// ListingFilters is the typed form of the public catalog query string.
// Nil price bounds mean "not given".
type ListingFilters struct {
	Q        string
	Type     string
	Status   string
	City     string
	District string
	Rooms    string
	MinPrice *float64
	MaxPrice *float64
}

// NormalizeListingFilters coerces raw query parameters into ListingFilters.
// Unrecognized keys are ignored. Enum and numeric parameters fail closed:
// a bad value is a *utils.ValidationError, never silently dropped.
//
// min/minPrice and max/maxPrice are aliases; they are applied in the order
// minPrice, maxPrice, min, max, so the short spelling wins when both arrive.
func NormalizeListingFilters(q url.Values) (ListingFilters, error) {
	f := ListingFilters{
		Q:        strings.TrimSpace(q.Get("q")),
		Type:     strings.TrimSpace(q.Get("type")),
		Status:   strings.TrimSpace(q.Get("status")),
		City:     strings.TrimSpace(q.Get("city")),
		District: strings.TrimSpace(q.Get("district")),
		Rooms:    strings.TrimSpace(q.Get("rooms")),
	}

	if f.Type != "" && !models.ValidPropertyType(f.Type) {
		return f, utils.NewValidationError("type", "unknown property type")
	}
	if f.Status != "" && !models.ValidPropertyStatus(f.Status) {
		return f, utils.NewValidationError("status", "unknown property status")
	}

	for _, key := range []string{"minPrice", "maxPrice", "min", "max"} {
		if !q.Has(key) {
			continue
		}
		v, err := parsePrice(key, q.Get(key))
		if err != nil {
			return f, err
		}
		if key == "minPrice" || key == "min" {
			f.MinPrice = v
		} else {
			f.MaxPrice = v
		}
	}

	return f, nil
}

func parsePrice(key, raw string) (*float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, utils.NewValidationError(key, "must be a number")
	}
	if v < 0 {
		return nil, utils.NewValidationError(key, "must not be negative")
	}
	return &v, nil
}

// Pagination is the effective offset/limit pair.
type Pagination struct {
	Offset int
	Limit  int
}

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ResolvePagination reconciles the two coexisting schemes:
// legacy page/pageSize and modern skip/take.
//
// The limit is take when take is present, pageSize otherwise. The offset
// is skip when skip is present, (page-1)*pageSize otherwise. Mixing page
// with take (and no skip) therefore computes the offset from the default
// pageSize, not from take. Inherited behavior; callers depend on it, so
// it is kept literally and pinned by tests.
func ResolvePagination(q url.Values) (Pagination, error) {
	page := defaultPage
	pageSize := defaultPageSize

	if q.Has("page") {
		n, err := parseBoundedInt(q.Get("page"), "page", 1, 0)
		if err != nil {
			return Pagination{}, err
		}
		page = n
	}
	if q.Has("pageSize") {
		n, err := parseBoundedInt(q.Get("pageSize"), "pageSize", 1, maxPageSize)
		if err != nil {
			return Pagination{}, err
		}
		pageSize = n
	}

	limit := pageSize
	if q.Has("take") {
		n, err := parseBoundedInt(q.Get("take"), "take", 1, maxPageSize)
		if err != nil {
			return Pagination{}, err
		}
		limit = n
	}

	offset := (page - 1) * pageSize
	if q.Has("skip") {
		n, err := parseBoundedInt(q.Get("skip"), "skip", 0, 0)
		if err != nil {
			return Pagination{}, err
		}
		offset = n
	}

	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return Pagination{Offset: offset, Limit: limit}, nil
}

// parseBoundedInt parses a query int with an inclusive lower bound and an
// optional upper bound (0 = unbounded).
func parseBoundedInt(raw, key string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, utils.NewValidationError(key, "must be an integer")
	}
	if n < min {
		return 0, utils.NewValidationError(key, "out of range")
	}
	if max > 0 && n > max {
		return 0, utils.NewValidationError(key, "out of range")
	}
	return n, nil
}

// Sort is a parsed "field:direction" token.
type Sort struct {
	Field     string
	Direction string // "asc" or "desc"
}

// ResolveSort parses "field:direction" with default "createdAt:desc".
// Only the literal token "desc" selects descending; anything else,
// including absence, is ascending. The field is not validated here: an
// unknown column surfaces as a database error at query time.
func ResolveSort(s string) Sort {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "createdAt:desc"
	}
	parts := strings.SplitN(s, ":", 2)
	dir := "asc"
	if len(parts) == 2 && parts[1] == "desc" {
		dir = "desc"
	}
	return Sort{Field: parts[0], Direction: dir}
}

// OrderClause renders the sort for the ORM, mapping the API's camelCase
// field names onto snake_case columns. The field is emitted as a quoted
// identifier, never as raw SQL: an unknown field still fails as a
// database error, but it cannot execute as an expression.
func (s Sort) OrderClause() clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Name: camelToSnake(s.Field)},
		Desc:   s.Direction == "desc",
	}
}

func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ApplyListingFilters ANDs the present filters onto the query. The public
// path additionally gates on published = true; the admin path never does.
// q is the single OR block: a case-insensitive substring match over title
// and description. City/district are JSON path equalities on location.
func ApplyListingFilters(db *gorm.DB, f ListingFilters, publicOnly bool) *gorm.DB {
	if publicOnly {
		db = db.Where("published = ?", true)
	}
	if f.Q != "" {
		p := "%" + strings.ToLower(f.Q) + "%"
		db = db.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", p, p)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.City != "" {
		db = db.Where(datatypes.JSONQuery("location").Equals(f.City, "city"))
	}
	if f.District != "" {
		db = db.Where(datatypes.JSONQuery("location").Equals(f.District, "district"))
	}
	if f.Rooms != "" {
		db = db.Where("rooms = ?", f.Rooms)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	return db
}
