package ledger

import (
	"math/bits"

	"patronage/internal/domain"
)

// Threshold separates the 90% and 95% creator tiers, in base units. Amounts
// equal to the threshold stay on the 90% tier.
const Threshold uint64 = 10_000

// Split partitions funds between the project creator and the platform
// operator. Per entry the creator receives floor(amount*9/10) at or below
// the threshold and floor(amount*19/20) above it; the operator receives the
// remainder, so for every denomination the two shares sum to the original
// amount exactly.
func Split(funds domain.Funds, threshold uint64) (creator, operator domain.Funds) {
	if len(funds) == 0 {
		return nil, nil
	}
	creator = make(domain.Funds, 0, len(funds))
	operator = make(domain.Funds, 0, len(funds))
	for _, coin := range funds {
		var share uint64
		if coin.Amount <= threshold {
			share = mulDiv(coin.Amount, 9, 10)
		} else {
			share = mulDiv(coin.Amount, 19, 20)
		}
		creator = append(creator, domain.Coin{Denom: coin.Denom, Amount: share})
		operator = append(operator, domain.Coin{Denom: coin.Denom, Amount: coin.Amount - share})
	}
	return creator, operator
}

// mulDiv computes floor(a*num/den) with a 128-bit intermediate product, so
// the multiplication cannot overflow for any uint64 amount. Callers keep
// num < den, which keeps the high word below the divisor.
func mulDiv(a, num, den uint64) uint64 {
	hi, lo := bits.Mul64(a, num)
	q, _ := bits.Div64(hi, lo, den)
	return q
}
