package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Address is an opaque account identity. The host validates addresses before
// they reach the ledger; the ledger only stores and compares them.
type Address string

func (a Address) String() string { return string(a) }

// Coin is an amount of a single denomination, in base units.
type Coin struct {
	Denom  string
	Amount uint64
}

// coinJSON keeps amounts as strings on the wire so full uint64 values survive
// clients that parse JSON numbers as floats.
type coinJSON struct {
	Denom  string          `json:"denom"`
	Amount json.RawMessage `json:"amount"`
}

func (c Coin) MarshalJSON() ([]byte, error) {
	amount := strconv.Quote(strconv.FormatUint(c.Amount, 10))
	return json.Marshal(coinJSON{Denom: c.Denom, Amount: json.RawMessage(amount)})
}

// UnmarshalJSON accepts the amount as either a string or a bare number.
func (c *Coin) UnmarshalJSON(data []byte) error {
	var raw coinJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	text := strings.TrimSpace(string(raw.Amount))
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	if text == "" {
		return fmt.Errorf("coin %q: amount is required", raw.Denom)
	}
	amount, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("coin %q: invalid amount %s", raw.Denom, text)
	}
	c.Denom = raw.Denom
	c.Amount = amount
	return nil
}

// Funds is an ordered set of coins attached to a donation.
type Funds []Coin

// NonZero returns the funds with zero-amount entries dropped. A zero-value
// transfer is a no-op and must never be emitted.
func (f Funds) NonZero() Funds {
	var out Funds
	for _, c := range f {
		if c.Amount > 0 {
			out = append(out, c)
		}
	}
	return out
}

// IsZero reports whether every entry carries a zero amount.
func (f Funds) IsZero() bool {
	for _, c := range f {
		if c.Amount > 0 {
			return false
		}
	}
	return true
}

// Validate applies the host-level payment constraints: every coin names a
// denomination, and no denomination repeats. The ledger core assumes funds
// it receives have already passed this check.
func (f Funds) Validate() error {
	seen := make(map[string]struct{}, len(f))
	for _, c := range f {
		if c.Denom == "" {
			return PaymentError{Reason: "coin denomination is empty"}
		}
		if _, dup := seen[c.Denom]; dup {
			return PaymentError{Reason: fmt.Sprintf("duplicate denomination %q", c.Denom)}
		}
		seen[c.Denom] = struct{}{}
	}
	return nil
}
