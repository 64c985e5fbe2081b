// Package catalog holds the item classification shared by the cart and
// quote models. Products carry stock; services do not.
package catalog

type Kind string

const (
	KindProduct Kind = "product"
	KindService Kind = "service"
)

// Normalize maps unknown or empty kinds to product, which is how the
// admin UI has always treated untagged items.
func Normalize(k Kind) Kind {
	if k == KindService {
		return KindService
	}
	return KindProduct
}

func (k Kind) IsProduct() bool {
	return Normalize(k) == KindProduct
}
