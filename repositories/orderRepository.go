package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/database"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

const ordersFile = "orders"

// OrderRepository persists orders. Loading requires the medicine catalog so
// line-item references can be resolved; the catalog is therefore loaded
// first.
type OrderRepository struct {
	store *database.Store
	log   zerolog.Logger
}

func NewOrderRepository(store *database.Store, log zerolog.Logger) *OrderRepository {
	return &OrderRepository{store: store, log: log}
}

func (r *OrderRepository) LoadAll(catalog []*models.Medicine) ([]*models.Order, error) {
	lines, err := r.store.ReadLines(ordersFile)
	if err != nil {
		return nil, err
	}
	orders := make([]*models.Order, 0, len(lines))
	for i, line := range lines {
		o, err := r.parseOrder(line, catalog)
		if err != nil {
			r.log.Warn().Err(err).Str("file", ordersFile).Int("line", i+1).Msg("Skipping malformed record")
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) SaveAll(orders []*models.Order) error {
	lines := make([]string, len(orders))
	for i, o := range orders {
		lines[i] = formatOrder(o)
	}
	return r.store.WriteLines(ordersFile, lines)
}

func (r *OrderRepository) parseOrder(line string, catalog []*models.Medicine) (*models.Order, error) {
	fields := codec.SplitFields(line)
	if len(fields) < 12 {
		return nil, &codec.ParseError{Entity: "order", Field: "line", Value: line, Reason: "expected 12 fields"}
	}
	id, err := codec.ParseInt("order", "id", fields[0])
	if err != nil {
		return nil, err
	}
	patientID, err := codec.ParseInt("order", "patientId", fields[1])
	if err != nil {
		return nil, err
	}
	orderDate, err := codec.ParseTime("order", "orderDate", fields[2])
	if err != nil {
		return nil, err
	}
	total, err := codec.ParseMoney("order", "total", fields[3])
	if err != nil {
		return nil, err
	}
	status, err := models.ParseOrderStatus(fields[4])
	if err != nil {
		return nil, &codec.ParseError{Entity: "order", Field: "status", Value: fields[4], Reason: err.Error()}
	}
	method, err := models.ParsePaymentMethod(fields[5])
	if err != nil {
		return nil, &codec.ParseError{Entity: "order", Field: "paymentMethod", Value: fields[5], Reason: err.Error()}
	}
	paid, err := codec.ParseBool("order", "paid", fields[6])
	if err != nil {
		return nil, err
	}
	delivery, err := models.ParseDeliveryMethod(fields[11])
	if err != nil {
		return nil, &codec.ParseError{Entity: "order", Field: "deliveryMethod", Value: fields[11], Reason: err.Error()}
	}

	// The paid flag must agree with the status. Status is authoritative when
	// the two disagree on disk.
	wantPaid := status == models.OrderPaid || status == models.OrderCompleted
	if paid != wantPaid {
		r.log.Warn().Int("order_id", id).Str("status", string(status)).Bool("paid", paid).
			Msg("Paid flag disagrees with status; trusting status")
		paid = wantPaid
	}

	return &models.Order{
		ID:             id,
		PatientID:      patientID,
		OrderDate:      orderDate,
		Total:          total,
		Status:         status,
		PaymentMethod:  method,
		Paid:           paid,
		Items:          parseLineItems(r.log, "order", id, fields[7], catalog),
		PatientName:    fields[8],
		PatientPhone:   fields[9],
		PatientAddress: fields[10],
		DeliveryMethod: delivery,
	}, nil
}

func formatOrder(o *models.Order) string {
	return codec.JoinFields(
		strconv.Itoa(o.ID),
		strconv.Itoa(o.PatientID),
		codec.FormatTime(o.OrderDate),
		codec.FormatMoney(o.Total),
		string(o.Status),
		string(o.PaymentMethod),
		strconv.FormatBool(o.Paid),
		formatLineItems(o.Items),
		o.PatientName,
		o.PatientPhone,
		o.PatientAddress,
		string(o.DeliveryMethod),
	)
}
