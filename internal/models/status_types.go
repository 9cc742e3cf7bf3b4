package models

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTransition is returned when a status change is not allowed
// from the order's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderConfirmed, OrderCancelled},
	OrderConfirmed:      {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered, OrderCancelled},
	OrderDelivered:      {},
	OrderCancelled:      {},
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentUnpaid:   {PaymentPaid, PaymentFailed},
	PaymentFailed:   {PaymentPaid, PaymentUnpaid},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether an order may move from s to next.
// Staying in the same status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == next || slices.Contains(orderTransitions[s], next)
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// CanTransitionTo reports whether a payment may move from s to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == next || slices.Contains(paymentTransitions[s], next)
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown payment status %q", s)
	}
	return status, nil
}

// TransitionError describes a rejected status change.
type TransitionError struct {
	Field string
	From  string
	To    string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot change from %q to %q", e.Field, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// StatusUpdate is a partial change to an order's statuses.
// Nil fields are left untouched.
type StatusUpdate struct {
	Status        *OrderStatus
	PaymentStatus *PaymentStatus
}

func (u StatusUpdate) Empty() bool {
	return u.Status == nil && u.PaymentStatus == nil
}

// Apply checks the update against the current statuses and returns the
// resulting pair.
func (u StatusUpdate) Apply(status OrderStatus, payment PaymentStatus) (OrderStatus, PaymentStatus, error) {
	nextStatus, nextPayment := status, payment
	if u.Status != nil {
		if !status.CanTransitionTo(*u.Status) {
			return status, payment, &TransitionError{Field: "status", From: string(status), To: string(*u.Status)}
		}
		nextStatus = *u.Status
	}
	if u.PaymentStatus != nil {
		if !payment.CanTransitionTo(*u.PaymentStatus) {
			return status, payment, &TransitionError{Field: "payment_status", From: string(payment), To: string(*u.PaymentStatus)}
		}
		nextPayment = *u.PaymentStatus
	}
	return nextStatus, nextPayment, nil
}
