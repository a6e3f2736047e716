package catalog

// All is the wildcard value accepted by every categorical attribute.
const All = "All"

// Attribute names one of the categorical package fields, in cascade order.
type Attribute string

const (
	AttrType   Attribute = "type"
	AttrLength Attribute = "length"
	AttrHand   Attribute = "hand"
	AttrSide   Attribute = "side"
)

var attributeOrder = []Attribute{AttrType, AttrLength, AttrHand, AttrSide}

// Attributes returns the categorical attributes in the order their filters cascade.
func Attributes() []Attribute {
	out := make([]Attribute, len(attributeOrder))
	copy(out, attributeOrder)
	return out
}

// Package is a purchasable service offering.
type Package struct {
	Name        string  `json:"name" mapstructure:"name"`
	Type        string  `json:"type" mapstructure:"type"`
	Length      string  `json:"length" mapstructure:"length"`
	Hand        string  `json:"hand" mapstructure:"hand"`
	Side        string  `json:"side" mapstructure:"side"`
	Price       float64 `json:"price" mapstructure:"price"`
	Description string  `json:"description" mapstructure:"description"`
}

func (p Package) Value(attr Attribute) string {
	switch attr {
	case AttrType:
		return p.Type
	case AttrLength:
		return p.Length
	case AttrHand:
		return p.Hand
	case AttrSide:
		return p.Side
	}
	return ""
}

// Catalog is the immutable list of packages loaded at startup.
type Catalog struct {
	packages []Package
}

func New(packages []Package) *Catalog {
	cp := make([]Package, len(packages))
	copy(cp, packages)
	return &Catalog{packages: cp}
}

func (c *Catalog) Packages() []Package {
	cp := make([]Package, len(c.packages))
	copy(cp, c.packages)
	return cp
}

func (c *Catalog) Len() int {
	return len(c.packages)
}

func (c *Catalog) Empty() bool {
	return len(c.packages) == 0
}
