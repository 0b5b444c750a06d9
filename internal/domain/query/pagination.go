package query

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Pagination carries the common list-query parameters down to the
// repository layer. A nil Limit or Offset means "use the repository
// default". After is a cursor: only rows with an ID strictly greater
// (asc) or smaller (desc) than it are returned.
type Pagination struct {
	Limit  *int
	Offset *int
	Order  string
	SortBy string
	After  *uint
}

// LimitOrDefault returns the requested limit, or def when unset or invalid.
func (p *Pagination) LimitOrDefault(def int) int {
	if p == nil || p.Limit == nil || *p.Limit < 1 {
		return def
	}
	return *p.Limit
}

// OffsetOrZero returns the requested offset, clamped at zero.
func (p *Pagination) OffsetOrZero() int {
	if p == nil || p.Offset == nil || *p.Offset < 0 {
		return 0
	}
	return *p.Offset
}

// OrderOrDefault returns the requested sort order, or def when unset.
func (p *Pagination) OrderOrDefault(def string) string {
	if p == nil || (p.Order != OrderAsc && p.Order != OrderDesc) {
		return def
	}
	return p.Order
}
