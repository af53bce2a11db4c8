package services

import (
	"strconv"
	"strings"

	"deliveryoracle/internal/core/domain/model/order"
)

// ChainOrderResolver is a domain service that resolves the numeric
// on-chain identifier of an order.
//
// Resolution precedence:
//  1. An explicitly supplied id on the request, parsed as 0x-prefixed
//     hexadecimal or decimal.
//  2. The order metadata field chainOrderId, same dual-format rule.
//  3. Otherwise unresolved.
//
// Unresolved is a distinct state from zero: a milestone requiring
// on-chain action with an unresolved chain id must fail closed, never
// silently substitute zero.
type ChainOrderResolver struct{}

// NewChainOrderResolver creates a ChainOrderResolver instance.
func NewChainOrderResolver() ChainOrderResolver {
	return ChainOrderResolver{}
}

// Resolve returns the chain order id and whether one was resolved.
// An unparsable explicit value falls through to the metadata value.
func (r ChainOrderResolver) Resolve(explicit string, meta order.Metadata) (uint64, bool) {
	if id, ok := r.parse(explicit); ok {
		return id, true
	}
	return r.parse(meta.ChainOrderID)
}

// parse accepts "0x"-prefixed hexadecimal or plain decimal.
func (ChainOrderResolver) parse(value string) (uint64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	var (
		id  uint64
		err error
	)
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		id, err = strconv.ParseUint(value[2:], 16, 64)
	} else {
		id, err = strconv.ParseUint(value, 10, 64)
	}
	if err != nil {
		return 0, false
	}
	return id, true
}
