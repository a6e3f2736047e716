package catalog

import "sort"

// Selection is the user's current choice per attribute plus an upper price bound.
// A nil Price means "no explicit bound", which resolves to the highest available price.
type Selection struct {
	Type   string   `json:"type"`
	Length string   `json:"length"`
	Hand   string   `json:"hand"`
	Side   string   `json:"side"`
	Price  *float64 `json:"price,omitempty"`
}

// NewSelection returns a selection with every attribute set to All.
func NewSelection() Selection {
	return Selection{Type: All, Length: All, Hand: All, Side: All}
}

func (s Selection) Get(attr Attribute) string {
	var v string
	switch attr {
	case AttrType:
		v = s.Type
	case AttrLength:
		v = s.Length
	case AttrHand:
		v = s.Hand
	case AttrSide:
		v = s.Side
	}
	if v == "" {
		return All
	}
	return v
}

func (s *Selection) Set(attr Attribute, value string) {
	if value == "" {
		value = All
	}
	switch attr {
	case AttrType:
		s.Type = value
	case AttrLength:
		s.Length = value
	case AttrHand:
		s.Hand = value
	case AttrSide:
		s.Side = value
	}
}

// PriceRange is the min/max price over the packages surviving the categorical filters.
// Fixed is set when there is nothing to choose between, including an empty result.
type PriceRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Fixed bool    `json:"fixed"`
}

// Signature identifies one effective filter state; any change must collapse pagination.
type Signature struct {
	Type   string
	Length string
	Hand   string
	Side   string
	Price  float64
}

// View is everything a caller needs to render the filter panel and its results.
type View struct {
	Selection  Selection
	Options    map[Attribute][]string
	PriceRange PriceRange
	Bound      float64
	Reset      []Attribute
	Packages   []Package
}

func (v View) Signature() Signature {
	return Signature{
		Type:   v.Selection.Get(AttrType),
		Length: v.Selection.Get(AttrLength),
		Hand:   v.Selection.Get(AttrHand),
		Side:   v.Selection.Get(AttrSide),
		Price:  v.Bound,
	}
}

// Options lists the sorted distinct values of attr among packages that agree
// with every selection made on an earlier attribute.
func Options(packages []Package, sel Selection, attr Attribute) []string {
	seen := make(map[string]struct{})
	for _, p := range packages {
		if !matchesBefore(p, sel, attr) {
			continue
		}
		seen[p.Value(attr)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Apply keeps, in catalog order, the packages matching every categorical selection.
// When sel.Price is set, packages priced above it are dropped too.
func Apply(packages []Package, sel Selection) []Package {
	out := make([]Package, 0, len(packages))
	for _, p := range packages {
		if !matchesBefore(p, sel, "") {
			continue
		}
		if sel.Price != nil && p.Price > *sel.Price {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Resolve computes the cascading options, the price bound and the filtered
// packages for sel. A categorical value no longer offered by its cascade is
// reset to All before later attributes are evaluated; those attributes are
// reported in View.Reset.
func Resolve(packages []Package, sel Selection) View {
	effective := NewSelection()
	view := View{Options: make(map[Attribute][]string, len(attributeOrder))}

	for _, attr := range attributeOrder {
		opts := Options(packages, effective, attr)
		view.Options[attr] = opts

		want := sel.Get(attr)
		if want != All && !contains(opts, want) {
			view.Reset = append(view.Reset, attr)
			want = All
		}
		effective.Set(attr, want)
	}

	view.PriceRange = priceRange(Apply(packages, effective))
	view.Bound = resolveBound(view.PriceRange, sel.Price)

	bound := view.Bound
	effective.Price = &bound
	view.Selection = effective
	view.Packages = Apply(packages, effective)
	return view
}

func priceRange(packages []Package) PriceRange {
	if len(packages) == 0 {
		return PriceRange{Fixed: true}
	}

	r := PriceRange{Min: packages[0].Price, Max: packages[0].Price}
	for _, p := range packages[1:] {
		if p.Price < r.Min {
			r.Min = p.Price
		}
		if p.Price > r.Max {
			r.Max = p.Price
		}
	}
	r.Fixed = r.Min == r.Max
	return r
}

func resolveBound(r PriceRange, requested *float64) float64 {
	if r.Fixed {
		return r.Max
	}
	if requested == nil || *requested < r.Min || *requested > r.Max {
		return r.Max
	}
	return *requested
}

// matchesBefore reports whether p agrees with sel on every attribute preceding
// stop. An empty stop checks all attributes.
func matchesBefore(p Package, sel Selection, stop Attribute) bool {
	for _, attr := range attributeOrder {
		if attr == stop {
			return true
		}
		want := sel.Get(attr)
		if want != All && p.Value(attr) != want {
			return false
		}
	}
	return true
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Filter holds one user's selection against a catalog.
type Filter struct {
	catalog   *Catalog
	selection Selection
}

func NewFilter(c *Catalog) *Filter {
	return &Filter{catalog: c, selection: NewSelection()}
}

func (f *Filter) Selection() Selection {
	return f.selection
}

// Select changes one attribute. Later attributes keep their values and are
// re-validated on the next View.
func (f *Filter) Select(attr Attribute, value string) {
	f.selection.Set(attr, value)
}

func (f *Filter) SetMaxPrice(price float64) {
	f.selection.Price = &price
}

func (f *Filter) ClearMaxPrice() {
	f.selection.Price = nil
}

// Replace swaps the whole selection, e.g. from a request that carries every field.
func (f *Filter) Replace(sel Selection) {
	for _, attr := range attributeOrder {
		sel.Set(attr, sel.Get(attr))
	}
	f.selection = sel
}

func (f *Filter) Options(attr Attribute) []string {
	return f.View().Options[attr]
}

func (f *Filter) PriceRange() PriceRange {
	return f.View().PriceRange
}

func (f *Filter) Apply() []Package {
	return f.View().Packages
}

// View resolves the current selection and keeps any stale-value resets.
// An explicit price bound survives so it can still apply after later changes.
func (f *Filter) View() View {
	v := Resolve(f.catalog.Packages(), f.selection)
	price := f.selection.Price
	f.selection = v.Selection
	f.selection.Price = price
	return v
}
