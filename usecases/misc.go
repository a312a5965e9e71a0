package usecases

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponValidity is how many whole days a coupon stays usable after activation.
const CouponValidity = 14

// CouponLifetime is the time from activation until a coupon counts as expired.
const CouponLifetime = (CouponValidity + 1) * 24 * time.Hour

// PointsPerCouponUnit is the loyalty cost of one currency unit of discount.
const PointsPerCouponUnit = 10

// ToggleCheckbox returns a copy of checkboxes with the value at key inverted.
// A key that is not in the map leaves the copy unchanged.
func ToggleCheckbox(checkboxes map[string]bool, key string) map[string]bool {
	toggled := make(map[string]bool, len(checkboxes))
	for k, v := range checkboxes {
		if k == key {
			v = !v
		}
		toggled[k] = v
	}
	return toggled
}

// IsCouponExpired reports whether more than CouponValidity whole days have
// passed between activation and now.
func IsCouponExpired(activatedAt, now time.Time) bool {
	days := int64(now.Sub(activatedAt) / (24 * time.Hour))
	return days > CouponValidity
}

// CouponExpiresAt is the first instant at which IsCouponExpired turns true.
func CouponExpiresAt(activatedAt time.Time) time.Time {
	return activatedAt.Add(CouponLifetime)
}

// PointsForOrder awards one loyalty point per whole currency unit spent.
func PointsForOrder(total decimal.Decimal) int {
	if total.IsNegative() {
		return 0
	}
	return int(total.Floor().IntPart())
}

// CouponCost is the number of points needed for a coupon worth amount.
func CouponCost(amount decimal.Decimal) int {
	return int(amount.Mul(decimal.NewFromInt(PointsPerCouponUnit)).Ceil().IntPart())
}
