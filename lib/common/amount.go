//
// Define the `Amount` type, the monetary and vote-weight type used across the
// code base.
//
// The same type backs spendable balances, balance holds, declared vote powers
// and tally weights. Two families of operations are defined:
// - `Add` / `Sub` do checked arithmetic and return an error object
// - `SaturatingAdd` / `SaturatingSub` / `SaturatingMult` degrade to the
//   numeric bounds instead of failing; tally weights and quadratic costs use
//   these so that overflow never aborts an operation
// - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a
//   `panic`. Those are provided for testing and should not be in production
//   code.
//
package common

import (
	"math"
	"strconv"

	"quadvote.io/quadvote/lib/errors"
)

// Main monetary type used across quadvote
type Amount uint64

const MaximumAmount Amount = math.MaxUint64

// Stringer interface implementation
func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// Add an `Amount` to this `Amount`. If the result would overflow, an error is
// returned.
func (a Amount) Add(added Amount) (n Amount, err error) {
	if n = a + added; n < a {
		err = errors.AmountOverflow
	}
	return
}

// Counterpart of `Add` which panics instead of returning an error.
func (a Amount) MustAdd(added Amount) Amount {
	if v, err := a.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

// Sub subtracts an `Amount` from this `Amount`. If the result would go under
// zero, an error is returned.
func (a Amount) Sub(sub Amount) (Amount, error) {
	if a < sub {
		return Amount(0), errors.AmountUnderflow
	}
	return a - sub, nil
}

// Counterpart of `Sub` which panics instead of returning an error.
func (a Amount) MustSub(sub Amount) Amount {
	if v, err := a.Sub(sub); err != nil {
		panic(err)
	} else {
		return v
	}
}

// SaturatingAdd adds and clamps at MaximumAmount.
func (a Amount) SaturatingAdd(added Amount) Amount {
	if n := a + added; n >= a {
		return n
	}
	return MaximumAmount
}

// SaturatingSub subtracts and clamps at zero.
func (a Amount) SaturatingSub(sub Amount) Amount {
	if a < sub {
		return Amount(0)
	}
	return a - sub
}

// SaturatingMult multiplies and clamps at MaximumAmount.
func (a Amount) SaturatingMult(m Amount) Amount {
	if a == 0 || m == 0 {
		return Amount(0)
	}
	if a > MaximumAmount/m {
		return MaximumAmount
	}
	return a * m
}

// Square returns the quadratic cost of this `Amount` taken as a vote power.
func (a Amount) Square() Amount {
	return a.SaturatingMult(a)
}

// MustAmountFromString parses a decimal string, panicking on malformed input.
func MustAmountFromString(v string) Amount {
	a, err := AmountFromString(v)
	if err != nil {
		panic(err)
	}
	return a
}

// AmountFromString parses a decimal string into an `Amount`.
func AmountFromString(v string) (Amount, error) {
	parsed, err := strconv.ParseUint(v, 10, 64)
	return Amount(parsed), err
}
