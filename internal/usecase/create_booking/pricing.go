package create_booking

import (
	"math"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

// pricing разбивка цены бронирования
type pricing struct {
	BasePrice       float64
	AddOnPrice      float64
	TotalDuration   int
	AcceptedAddOns  []int64
	Subtotal        float64
	LoyaltyPoints   int     // баллы после ограничения
	LoyaltyDiscount float64 // скидка за баллы
	PromoDiscount   float64
	DiscountAmount  float64
	FinalPrice      float64
}

// computePricing считает разбивку цены по каталогу услуги.
// Неизвестные ID дополнительных услуг молча игнорируются: клиентские
// списки часто отстают от каталога, ошибка здесь ломала бы оформление.
func computePricing(service *vendorservice.Service, addOnIDs []int64, promoDiscount float64) pricing {
	p := pricing{
		BasePrice:      service.Price,
		TotalDuration:  service.DurationMinutes,
		AcceptedAddOns: make([]int64, 0, len(addOnIDs)),
		PromoDiscount:  promoDiscount,
	}

	addOnsByID := make(map[int64]vendorservice.AddOn, len(service.AddOns))
	for _, addOn := range service.AddOns {
		addOnsByID[addOn.ID] = addOn
	}

	for _, id := range addOnIDs {
		addOn, ok := addOnsByID[id]
		if !ok {
			continue
		}
		p.AddOnPrice += addOn.Price
		p.TotalDuration += addOn.DurationMinutes
		p.AcceptedAddOns = append(p.AcceptedAddOns, id)
	}

	p.Subtotal = p.BasePrice + p.AddOnPrice
	return p
}

// applyDiscounts применяет скидки к подитогу. Итоговая цена не бывает
// отрицательной: скидка сверх подитога не переносится и не возвращается.
func (p *pricing) applyDiscounts(loyaltyPoints int, loyaltyDiscount float64) {
	p.LoyaltyPoints = loyaltyPoints
	p.LoyaltyDiscount = loyaltyDiscount
	p.DiscountAmount = loyaltyDiscount + p.PromoDiscount
	p.FinalPrice = math.Max(0, p.Subtotal-p.DiscountAmount)
}
