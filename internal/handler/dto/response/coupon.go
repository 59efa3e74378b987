package response

import (
	"time"

	"shop-orders/internal/usecase/commands"
	"shop-orders/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CouponResponse struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	DiscountType     string    `json:"discountType"`
	DiscountValue    int64     `json:"discountValue"`
	MinPurchaseCents int64     `json:"minPurchaseCents"`
	ExpiresAt        time.Time `json:"expiresAt"`
	MaxUses          int32     `json:"maxUses"`
	UsedCount        int32     `json:"usedCount"`
	UsesPerUser      int32     `json:"usesPerUser"`
}

type VoucherResponse struct {
	Coupon CouponResponse `json:"coupon"`
	IsUsed bool           `json:"isUsed"`
}

type CouponValidationResponse struct {
	Code          string `json:"code"`
	DiscountCents int64  `json:"discountCents"`
}

func FromCouponView(view *queries.CouponView) *CouponResponse {
	var resp CouponResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromCouponList(views []*queries.CouponView) []*CouponResponse {
	resp := make([]*CouponResponse, len(views))
	for i, view := range views {
		resp[i] = FromCouponView(view)
	}
	return resp
}

func FromVoucherView(view *queries.VoucherView) *VoucherResponse {
	return &VoucherResponse{
		Coupon: *FromCouponView(&view.Coupon),
		IsUsed: view.IsUsed,
	}
}

func FromVoucherList(views []*queries.VoucherView) []*VoucherResponse {
	resp := make([]*VoucherResponse, len(views))
	for i, view := range views {
		resp[i] = FromVoucherView(view)
	}
	return resp
}

func FromEvaluation(ev *commands.Evaluation) *CouponValidationResponse {
	return &CouponValidationResponse{
		Code:          ev.Coupon.Code,
		DiscountCents: ev.DiscountCents,
	}
}
