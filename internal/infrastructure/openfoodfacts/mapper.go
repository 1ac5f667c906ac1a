package openfoodfacts

import (
	"github.com/safeeat/backend/internal/domain"
)

// MapToProduct extracts the product from an API envelope.
// An envelope without a product is a lookup miss, whatever its status says.
func MapToProduct(envelope *domain.ProductResponse, barcode string) (*domain.Product, error) {
	if envelope == nil || envelope.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	product := envelope.Product
	if product.Code.OrEmpty() == "" {
		if envelope.Code.OrEmpty() != "" {
			product.Code = envelope.Code
		} else {
			product.Code = domain.Some(barcode)
		}
	}

	return product, nil
}
