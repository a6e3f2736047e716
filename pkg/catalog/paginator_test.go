package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricedPackages(prices ...float64) []Package {
	out := make([]Package, 0, len(prices))
	for i, price := range prices {
		out = append(out, Package{
			Name:   string(rune('A' + i)),
			Type:   "Party",
			Length: "Wrist",
			Hand:   "One",
			Side:   "Front",
			Price:  price,
		})
	}
	return out
}

func TestPaginator_RevealSixPackages(t *testing.T) {
	pkgs := pricedPackages(500, 800, 1200, 1500, 2000, 2500)
	v := Resolve(pkgs, NewSelection())
	require.Len(t, v.Packages, 6)
	assert.Equal(t, 2500.0, v.Bound)

	var p Paginator
	p.Observe(v.Signature())

	page := p.Page(v.Packages)
	assert.Len(t, page.Items, 4)
	assert.True(t, page.HasMore)
	assert.Equal(t, 6, page.Total)
	require.Len(t, page.Rows, 1)

	assert.True(t, p.ShowMore(len(v.Packages)))

	page = p.Page(v.Packages)
	assert.Len(t, page.Items, 6)
	assert.False(t, page.HasMore)
	require.Len(t, page.Rows, 2)
	assert.Len(t, page.Rows[0], 4)
	assert.Len(t, page.Rows[1], 2)
	assert.True(t, p.ShowAll)
	assert.False(t, p.ShowMoreClicked, "click flag settles once everything is shown")
}

func TestPaginator_SmallSetsNeverTransition(t *testing.T) {
	for n := 0; n <= PageSize; n++ {
		var p Paginator
		items := pricedPackages(make([]float64, n)...)

		assert.False(t, p.ShowMore(n))
		page := p.Page(items)
		assert.Len(t, page.Items, n)
		assert.False(t, page.HasMore)
		assert.False(t, p.ShowAll)
		assert.False(t, p.ShowMoreClicked)
	}
}

func TestPaginator_ShowMoreIsIdempotent(t *testing.T) {
	var p Paginator
	assert.True(t, p.ShowMore(10))
	assert.False(t, p.ShowMore(10))

	p.Page(pricedPackages(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	assert.False(t, p.ShowMore(10), "already expanded")
	assert.True(t, p.ShowAll)
}

func TestPaginator_FilterChangeCollapses(t *testing.T) {
	pkgs := pricedPackages(500, 800, 1200, 1500, 2000, 2500)
	var p Paginator

	v := Resolve(pkgs, NewSelection())
	assert.False(t, p.Observe(v.Signature()))
	p.ShowMore(len(v.Packages))
	require.True(t, p.ShowAll)

	assert.False(t, p.Observe(v.Signature()), "same state keeps the reveal")
	assert.True(t, p.ShowAll)

	v = Resolve(pkgs, Selection{Price: ptr(2000)})
	assert.True(t, p.Observe(v.Signature()))
	assert.False(t, p.ShowAll)
	assert.False(t, p.ShowMoreClicked)

	page := p.Page(v.Packages)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, 5, page.Total)
}

func TestPaginator_CategoricalChangeCollapses(t *testing.T) {
	pkgs := append(pricedPackages(1, 2, 3, 4, 5), Package{Name: "Z", Type: "Bridal", Price: 9})
	var p Paginator

	p.Observe(Resolve(pkgs, NewSelection()).Signature())
	p.ShowMore(6)

	assert.True(t, p.Observe(Resolve(pkgs, Selection{Type: "Party"}).Signature()))
	assert.False(t, p.ShowAll)
}

func TestPaginator_Reset(t *testing.T) {
	var p Paginator
	p.Observe(Signature{Type: All})
	p.ShowMore(8)
	p.Reset()

	assert.False(t, p.ShowAll)
	assert.False(t, p.Observe(Signature{Type: All}), "no previous signature after reset")
}

func TestRows(t *testing.T) {
	assert.Nil(t, Rows([]int{}, 4))
	assert.Equal(t, [][]int{{1, 2, 3, 4}, {5}}, Rows([]int{1, 2, 3, 4, 5}, 4))
	assert.Equal(t, [][]int{{1, 2}, {3}}, Rows([]int{1, 2, 3}, 2))
	assert.Equal(t, [][]int{{1}}, Rows([]int{1}, 0))
}
