package openfoodfacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeeat/backend/internal/domain"
)

func TestMapToProduct(t *testing.T) {
	tests := []struct {
		name     string
		envelope *domain.ProductResponse
		barcode  string
		wantErr  error
		wantCode string
	}{
		{
			name:     "nil envelope",
			envelope: nil,
			wantErr:  domain.ErrProductNotFound,
		},
		{
			name:     "envelope without product",
			envelope: &domain.ProductResponse{Status: 1},
			wantErr:  domain.ErrProductNotFound,
		},
		{
			name:     "keeps product code",
			envelope: &domain.ProductResponse{Product: &domain.Product{Code: domain.Some("111")}, Code: domain.Some("222")},
			barcode:  "333",
			wantCode: "111",
		},
		{
			name:     "falls back to envelope code",
			envelope: &domain.ProductResponse{Product: &domain.Product{}, Code: domain.Some("222")},
			barcode:  "333",
			wantCode: "222",
		},
		{
			name:     "falls back to queried barcode",
			envelope: &domain.ProductResponse{Product: &domain.Product{}},
			barcode:  "333",
			wantCode: "333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := MapToProduct(tt.envelope, tt.barcode)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, product)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, product.Code.Value)
		})
	}
}
