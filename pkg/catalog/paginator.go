package catalog

// PageSize is both the collapsed page length and the row width.
const PageSize = 4

// ShowMoreLabel is the caption for the reveal control.
const ShowMoreLabel = "Show More Packages"

// Paginator tracks the two-flag "show more" reveal for one user.
type Paginator struct {
	ShowAll         bool
	ShowMoreClicked bool

	last *Signature
}

// Page is the visible slice of a result set.
type Page struct {
	Items   []Package
	Rows    [][]Package
	Total   int
	HasMore bool
}

// Observe records the filter state the next page is computed for. A different
// signature collapses the listing; it returns true when that happened.
func (p *Paginator) Observe(sig Signature) bool {
	if p.last != nil && *p.last == sig {
		return false
	}
	changed := p.last != nil
	p.last = &sig
	p.ShowAll = false
	p.ShowMoreClicked = false
	return changed
}

// ShowMore reveals every item of a result set of size total. Sets of PageSize
// or fewer never transition.
func (p *Paginator) ShowMore(total int) bool {
	if total <= PageSize {
		return false
	}
	if p.ShowAll || p.ShowMoreClicked {
		return false
	}
	p.ShowAll = true
	p.ShowMoreClicked = true
	return true
}

// Page returns the visible items. Once the set is fully shown the click flag settles.
func (p *Paginator) Page(items []Package) Page {
	total := len(items)
	visible := items
	if !p.ShowAll && total > PageSize {
		visible = items[:PageSize]
	}
	if p.ShowAll || total <= PageSize {
		p.ShowMoreClicked = false
	}

	return Page{
		Items:   visible,
		Rows:    Rows(visible, PageSize),
		Total:   total,
		HasMore: !p.ShowAll && total > PageSize,
	}
}

// Reset collapses the listing and forgets the last signature.
func (p *Paginator) Reset() {
	p.ShowAll = false
	p.ShowMoreClicked = false
	p.last = nil
}

// Rows chunks items into rows of at most size elements.
func Rows[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = PageSize
	}
	var rows [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		rows = append(rows, items[start:end])
	}
	return rows
}
