package pagination

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// ParseDirection maps a query-parameter value to a Direction, defaulting to
// next for anything unrecognized.
func ParseDirection(s string) Direction {
	if s == string(DirectionPrev) {
		return DirectionPrev
	}
	return DirectionNext
}

// ValueKind tells the engine how to turn a decoded cursor value back into a
// typed SQL argument.
type ValueKind int

const (
	KindString ValueKind = iota
	KindTime
)

// Order is the composite sort order of a collection: a primary column plus
// the id tiebreak in the same direction. The primary column need not be
// unique; the tiebreak guarantees a strict total order.
type Order struct {
	Column     string
	Descending bool
	Kind       ValueKind
}

// Params are the caller-supplied pagination inputs. Cursor is the raw token
// and may be garbage; a token that fails to decode selects the first page.
type Params struct {
	Limit     int
	Cursor    string
	Direction Direction
}

// Page is one bounded slice of a collection in canonical order, with the
// metadata needed to continue in either direction.
type Page[T any] struct {
	Items       []T
	NextCursor  *string
	PrevCursor  *string
	HasNextPage bool
	HasPrevPage bool
}

// SortValue extracts the encodable primary sort value and tiebreak id of a
// row. Time values must be rendered with FormatTime so they survive the
// cursor round trip.
type SortValue[T any] func(row T) (value string, id uint64)

// FormatTime renders a time for cursor encoding.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// List runs the keyset-bounded query and derives the page metadata.
//
// The query in q must already carry every filter and access predicate; the
// engine only appends the boundary condition, ordering and limit. For
// direction=prev the rows are fetched in reversed order so the nearest
// preceding page comes back, then re-reversed into canonical order.
func List[T any](q *gorm.DB, order Order, p Params, sortValue SortValue[T]) (Page[T], error) {
	limit := p.Limit
	if limit < 1 {
		limit = 1
	}
	dir := p.Direction
	if dir != DirectionPrev {
		dir = DirectionNext
	}

	cur := DecodeCursor(p.Cursor)
	var boundaryArg any
	if cur != nil {
		v, ok := typedValue(order.Kind, cur.Value)
		if !ok {
			// Value does not parse for this collection's sort kind:
			// same degradation as a malformed token.
			cur = nil
		} else {
			boundaryArg = v
		}
	}
	if cur == nil {
		dir = DirectionNext
	}

	// after == true selects rows strictly after the cursor in canonical
	// order; prev wants the rows strictly before it.
	fetchDescending := order.Descending
	if cur != nil {
		if dir == DirectionNext {
			q = boundary(q, order, true, boundaryArg, cur.ID)
		} else {
			q = boundary(q, order, false, boundaryArg, cur.ID)
			fetchDescending = !order.Descending
		}
	}

	q = q.Order(orderExpr(order.Column, fetchDescending)).Order(orderExpr("id", fetchDescending)).Limit(limit + 1)

	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return Page[T]{}, err
	}

	overflow := len(rows) > limit
	if overflow {
		rows = rows[:limit]
	}
	if dir == DirectionPrev {
		reverse(rows)
	}

	page := Page[T]{Items: rows}
	switch dir {
	case DirectionPrev:
		page.HasPrevPage = overflow
		page.HasNextPage = true
	default:
		page.HasNextPage = overflow
		page.HasPrevPage = cur != nil
	}

	if len(rows) > 0 {
		lv, lid := sortValue(rows[len(rows)-1])
		next := EncodeCursor(lv, lid)
		page.NextCursor = &next
		// A cursorless request is the first page: there is nothing before
		// it, so no prev token is emitted.
		if cur != nil {
			fv, fid := sortValue(rows[0])
			prev := EncodeCursor(fv, fid)
			page.PrevCursor = &prev
		}
	} else {
		page.HasNextPage = false
		page.HasPrevPage = false
	}
	return page, nil
}

func typedValue(kind ValueKind, raw string) (any, bool) {
	switch kind {
	case KindTime:
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, false
		}
		return t, true
	default:
		return raw, true
	}
}

// boundary appends the strict keyset condition relative to (value, id) in
// canonical order. Column names are code-level constants, never user input.
func boundary(q *gorm.DB, order Order, after bool, value any, id uint64) *gorm.DB {
	op := ">"
	if order.Descending == after {
		op = "<"
	}
	cond := fmt.Sprintf("%s %s ? OR (%s = ? AND id %s ?)", order.Column, op, order.Column, op)
	return q.Where(cond, value, value, id)
}

func orderExpr(column string, descending bool) string {
	if descending {
		return column + " desc"
	}
	return column + " asc"
}

func reverse[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
