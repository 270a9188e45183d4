package services

import (
	"PharmaDesk/models"
	"PharmaDesk/utils"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderService drives an order from creation through stock reservation and
// payment to completion or cancellation. It operates purely in memory
// against the loaded collections; saving is the caller's checkpoint.
type OrderService struct {
	log     zerolog.Logger
	wallets *WalletService
	catalog []*models.Medicine
	orders  []*models.Order
}

func NewOrderService(log zerolog.Logger, wallets *WalletService, catalog []*models.Medicine, orders []*models.Order) *OrderService {
	return &OrderService{log: log, wallets: wallets, catalog: catalog, orders: orders}
}

// Orders returns the current collection, including orders created this
// session.
func (s *OrderService) Orders() []*models.Order {
	return s.orders
}

// Create opens a PENDING order for the patient with a fresh id, no line
// items and a zero total. Contact fields are snapshotted from the patient
// at creation time.
func (s *OrderService) Create(patient *models.Patient) *models.Order {
	o := &models.Order{
		ID:             s.nextID(),
		PatientID:      patient.ID,
		OrderDate:      time.Now().Truncate(time.Second),
		Total:          decimal.Zero,
		Status:         models.OrderPending,
		PaymentMethod:  models.PaymentNotPaid,
		Items:          nil,
		PatientName:    patient.Name,
		PatientPhone:   patient.Phone,
		PatientAddress: patient.Address,
		DeliveryMethod: models.DeliveryPickup,
	}
	s.orders = append(s.orders, o)
	s.log.Info().Int("order_id", o.ID).Int("patient_id", patient.ID).Msg("Order created")
	return o
}

// AddItem reserves stock for one line item. The medicine's on-hand quantity
// is decremented immediately; cancellation restores it. The order total
// grows by the unit price at the time the item is added.
func (s *OrderService) AddItem(order *models.Order, medicineID, quantity int) error {
	if order.Status != models.OrderPending {
		return &InvalidTransitionError{Entity: "order", ID: order.ID, From: string(order.Status), Operation: "add line item"}
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	medicine := models.FindMedicine(s.catalog, medicineID)
	if medicine == nil {
		return ErrMedicineNotFound
	}
	if medicine.Quantity < quantity {
		return ErrInsufficientStock
	}
	medicine.Quantity -= quantity
	order.Items = append(order.Items, models.LineItem{MedicineID: medicineID, Quantity: quantity})
	order.Total = order.Total.Add(medicine.Price.Mul(decimal.NewFromInt(int64(quantity))))
	return nil
}

// PayFromWallet settles a PENDING order against the patient's wallet. On
// insufficient funds nothing changes: no transaction, no transition.
func (s *OrderService) PayFromWallet(order *models.Order, patient *models.Patient) error {
	if order.Status != models.OrderPending {
		return &InvalidTransitionError{Entity: "order", ID: order.ID, From: string(order.Status), Operation: "pay"}
	}
	if err := s.wallets.Pay(patient, order.Total, order.ID, "wallet payment"); err != nil {
		return err
	}
	order.Status = models.OrderPaid
	order.PaymentMethod = models.PaymentWallet
	order.Paid = true
	s.log.Info().Int("order_id", order.ID).Str("total", order.Total.StringFixed(2)).Msg("Order paid from wallet")
	return nil
}

// PayWithCard settles a PENDING order after a format-only card number
// check. There is no external gateway; only the masked number is logged.
func (s *OrderService) PayWithCard(order *models.Order, cardNumber string) error {
	if order.Status != models.OrderPending {
		return &InvalidTransitionError{Entity: "order", ID: order.ID, From: string(order.Status), Operation: "pay"}
	}
	if err := utils.ValidateCardNumber(cardNumber); err != nil {
		return err
	}
	order.Status = models.OrderPaid
	order.PaymentMethod = models.PaymentCard
	order.Paid = true
	s.log.Info().Int("order_id", order.ID).Str("card", utils.MaskCardNumber(cardNumber)).Msg("Order paid by card")
	return nil
}

// Cancel is only legal while PENDING. Every reserved line item's quantity
// goes back to the catalog.
func (s *OrderService) Cancel(order *models.Order) error {
	if order.Status != models.OrderPending {
		return &InvalidTransitionError{Entity: "order", ID: order.ID, From: string(order.Status), Operation: "cancel"}
	}
	for _, item := range order.Items {
		if medicine := models.FindMedicine(s.catalog, item.MedicineID); medicine != nil {
			medicine.Quantity += item.Quantity
		}
	}
	order.Status = models.OrderCancelled
	s.log.Info().Int("order_id", order.ID).Msg("Order cancelled, stock restored")
	return nil
}

// Complete marks a PAID order as fulfilled.
func (s *OrderService) Complete(order *models.Order) error {
	if order.Status != models.OrderPaid {
		return &InvalidTransitionError{Entity: "order", ID: order.ID, From: string(order.Status), Operation: "complete"}
	}
	order.Status = models.OrderCompleted
	return nil
}

// nextID is unique across the whole order collection and monotonic.
func (s *OrderService) nextID() int {
	next := 1
	for _, o := range s.orders {
		if o.ID >= next {
			next = o.ID + 1
		}
	}
	return next
}
