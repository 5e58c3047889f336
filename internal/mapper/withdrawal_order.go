package mapper

import (
	"sort"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/keys"
	"github.com/anyulbade/payment-config-service/internal/model"
)

// MapWithdrawalsOrderToProviderMethod ranks refunds and payouts by list
// position: the first entry gets the highest rank. Every refund entry starts
// with payout rank 1; payout entries that are not refund entries are dropped.
func MapWithdrawalsOrderToProviderMethod(refunds, payouts []dto.ProviderMethodRef) []model.WithdrawalOrder {
	index := make(map[string]int, len(refunds))
	out := make([]model.WithdrawalOrder, 0, len(refunds))

	for i, r := range refunds {
		index[keys.Pair(r.MethodCode, r.ProviderCode)] = len(out)
		out = append(out, model.WithdrawalOrder{
			ProviderCode: r.ProviderCode,
			MethodCode:   r.MethodCode,
			RefundsOrder: len(refunds) - i,
			PayoutsOrder: 1,
		})
	}

	for j, p := range payouts {
		if i, ok := index[keys.Pair(p.MethodCode, p.ProviderCode)]; ok {
			out[i].PayoutsOrder = len(payouts) - j
		}
	}
	return out
}

// WithdrawalsOrderFromMethods lists bound provider methods by descending
// refund and payout rank.
func WithdrawalsOrderFromMethods(methods []model.ProviderMethod) dto.WithdrawalsOrderResponse {
	refunds := make([]model.ProviderMethod, len(methods))
	copy(refunds, methods)
	payouts := make([]model.ProviderMethod, len(methods))
	copy(payouts, methods)

	sort.SliceStable(refunds, func(i, j int) bool {
		if refunds[i].RefundsOrder != refunds[j].RefundsOrder {
			return refunds[i].RefundsOrder > refunds[j].RefundsOrder
		}
		return keys.Pair(refunds[i].MethodCode, refunds[i].ProviderCode) < keys.Pair(refunds[j].MethodCode, refunds[j].ProviderCode)
	})
	sort.SliceStable(payouts, func(i, j int) bool {
		if payouts[i].PayoutsOrder != payouts[j].PayoutsOrder {
			return payouts[i].PayoutsOrder > payouts[j].PayoutsOrder
		}
		return keys.Pair(payouts[i].MethodCode, payouts[i].ProviderCode) < keys.Pair(payouts[j].MethodCode, payouts[j].ProviderCode)
	})

	resp := dto.WithdrawalsOrderResponse{
		Refunds: make([]dto.WithdrawalOrderItem, len(refunds)),
		Payouts: make([]dto.WithdrawalOrderItem, len(payouts)),
	}
	for i, m := range refunds {
		resp.Refunds[i] = dto.WithdrawalOrderItem{ProviderCode: m.ProviderCode, MethodCode: m.MethodCode, Order: m.RefundsOrder}
	}
	for i, m := range payouts {
		resp.Payouts[i] = dto.WithdrawalOrderItem{ProviderCode: m.ProviderCode, MethodCode: m.MethodCode, Order: m.PayoutsOrder}
	}
	return resp
}
