package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/ledger"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Payment request types. FULL settles the container total; PARTIAL settles
// the given amount. FULL is the total, not the remaining balance, so a FULL
// request against a partially paid container fails the reconciliation cap.
const (
	PaymentTypeFull    = "FULL"
	PaymentTypePartial = "PARTIAL"
)

// resolvePaymentAmount picks the amount a payment request settles
func resolvePaymentAmount(container ledger.PaymentContainer, paymentType string, amount *decimal.Decimal) (valueobject.Money, error) {
	switch paymentType {
	case PaymentTypeFull:
		return valueobject.NewMoneyINR(container.ContainerTotal()), nil
	case PaymentTypePartial:
		if amount == nil || !amount.IsPositive() {
			return valueobject.Money{}, shared.NewValidationError("Partial payment requires a positive amount")
		}
		return valueobject.NewMoneyINR(*amount), nil
	default:
		return valueobject.Money{}, shared.NewValidationError(fmt.Sprintf("Payment type %q is not valid", paymentType))
	}
}

// paymentSpec builds the reconciliation spec for a payment request, filling
// the blanks the way the ledger office expects: INCOMING, cash, dated on the
// container's bill date, with an auto-generated note.
func paymentSpec(req *AcceptPaymentRequest, fallbackDate time.Time, fallbackNotes string) ledger.PaymentSpec {
	spec := ledger.PaymentSpec{
		Direction:       ledger.DirectionIncoming,
		Method:          ledger.PaymentMethodCash,
		Date:            fallbackDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	}
	if req.Direction != "" {
		spec.Direction = ledger.PaymentDirection(req.Direction)
	}
	if req.Method != "" {
		spec.Method = ledger.PaymentMethod(req.Method)
	}
	if req.Date != nil && !req.Date.IsZero() {
		spec.Date = *req.Date
	}
	if spec.Notes == "" {
		spec.Notes = fallbackNotes
	}
	return spec
}

// asPaymentRequest lifts an immediate-payment block into the common payment
// request shape. Immediate payments are always INCOMING with auto notes.
func (p *ImmediatePaymentInput) asPaymentRequest() *AcceptPaymentRequest {
	return &AcceptPaymentRequest{
		Type:            p.Type,
		Amount:          p.Amount,
		Method:          p.Method,
		ReferenceNumber: p.ReferenceNumber,
		Date:            p.Date,
	}
}

// detailsJSON renders audit detail payloads. A payload that cannot marshal
// degrades to empty details rather than failing the mutation.
func detailsJSON(kv map[string]any) string {
	b, err := json.Marshal(kv)
	if err != nil {
		return ""
	}
	return string(b)
}
