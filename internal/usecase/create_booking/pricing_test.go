package create_booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

func sampleService() *vendorservice.Service {
	return &vendorservice.Service{
		ID:              10,
		VendorID:        1,
		Name:            "Спа-массаж",
		Price:           1000,
		DurationMinutes: 60,
		AddOns: []vendorservice.AddOn{
			{ID: 101, Name: "Ароматерапия", Price: 500, DurationMinutes: 30},
			{ID: 102, Name: "Горячие камни", Price: 200, DurationMinutes: 15},
		},
	}
}

// TestComputePricing тестирует разбивку цены по каталогу
func TestComputePricing(t *testing.T) {
	tests := []struct {
		name             string
		addOnIDs         []int64
		promoDiscount    float64
		expectedBase     float64
		expectedAddOn    float64
		expectedSubtotal float64
		expectedDuration int
		expectedAccepted []int64
	}{
		{
			name:             "base service plus two add-ons",
			addOnIDs:         []int64{101, 102},
			expectedBase:     1000,
			expectedAddOn:    700,
			expectedSubtotal: 1700,
			expectedDuration: 105,
			expectedAccepted: []int64{101, 102},
		},
		{
			name:             "no add-ons",
			addOnIDs:         nil,
			expectedBase:     1000,
			expectedSubtotal: 1000,
			expectedDuration: 60,
			expectedAccepted: []int64{},
		},
		{
			name:             "unknown add-on is silently ignored",
			addOnIDs:         []int64{101, 999},
			expectedBase:     1000,
			expectedAddOn:    500,
			expectedSubtotal: 1500,
			expectedDuration: 90,
			expectedAccepted: []int64{101},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := computePricing(sampleService(), tt.addOnIDs, tt.promoDiscount)

			assert.Equal(t, tt.expectedBase, p.BasePrice)
			assert.Equal(t, tt.expectedAddOn, p.AddOnPrice)
			assert.Equal(t, tt.expectedSubtotal, p.Subtotal)
			assert.Equal(t, tt.expectedDuration, p.TotalDuration)
			assert.Equal(t, tt.expectedAccepted, p.AcceptedAddOns)
		})
	}
}

// TestApplyDiscounts тестирует применение скидок к подитогу
func TestApplyDiscounts(t *testing.T) {
	tests := []struct {
		name            string
		promoDiscount   float64
		loyaltyPoints   int
		loyaltyDiscount float64
		expectedAmount  float64
		expectedFinal   float64
	}{
		{
			name:            "loyalty discount on full order",
			loyaltyPoints:   150,
			loyaltyDiscount: 150,
			expectedAmount:  150,
			expectedFinal:   1550,
		},
		{
			name:           "no discounts",
			expectedAmount: 0,
			expectedFinal:  1700,
		},
		{
			name:            "loyalty and promo combined",
			promoDiscount:   200,
			loyaltyPoints:   100,
			loyaltyDiscount: 100,
			expectedAmount:  300,
			expectedFinal:   1400,
		},
		{
			name:            "discount exceeding subtotal floors at zero",
			promoDiscount:   1500,
			loyaltyPoints:   500,
			loyaltyDiscount: 500,
			expectedAmount:  2000,
			expectedFinal:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := computePricing(sampleService(), []int64{101, 102}, tt.promoDiscount)
			p.applyDiscounts(tt.loyaltyPoints, tt.loyaltyDiscount)

			assert.Equal(t, tt.expectedAmount, p.DiscountAmount)
			assert.Equal(t, tt.expectedFinal, p.FinalPrice)
			assert.Equal(t, tt.loyaltyPoints, p.LoyaltyPoints)
		})
	}
}
