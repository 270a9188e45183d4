package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderCompleted OrderStatus = "COMPLETED"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderPaid, OrderCancelled, OrderCompleted:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type PaymentMethod string

const (
	PaymentNotPaid PaymentMethod = "NOT_PAID"
	PaymentWallet  PaymentMethod = "WALLET"
	PaymentCard    PaymentMethod = "CARD"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentNotPaid, PaymentWallet, PaymentCard:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

type DeliveryMethod string

const (
	DeliveryPickup DeliveryMethod = "PICKUP"
	DeliveryHome   DeliveryMethod = "DELIVERY"
)

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case DeliveryPickup, DeliveryHome:
		return DeliveryMethod(s), nil
	}
	return "", fmt.Errorf("unknown delivery method %q", s)
}

// LineItem is a catalog reference plus a quantity, attached to an order or
// prescription. It does not own the medicine it points at: removing a
// medicine from the catalog leaves historical line items in place.
type LineItem struct {
	MedicineID int `json:"medicine_id"`
	Quantity   int `json:"quantity"`
}

// Order tracks a purchase from creation through payment to completion.
// Paid must agree with Status: true exactly for PAID and COMPLETED.
type Order struct {
	ID             int             `json:"id"`
	PatientID      int             `json:"patient_id"`
	OrderDate      time.Time       `json:"order_date"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Paid           bool            `json:"paid"`
	Items          []LineItem      `json:"items"`
	PatientName    string          `json:"patient_name"`
	PatientPhone   string          `json:"patient_phone"`
	PatientAddress string          `json:"patient_address"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
}

// FindOrder resolves an order reference by id, or nil.
func FindOrder(orders []*Order, id int) *Order {
	for _, o := range orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}
