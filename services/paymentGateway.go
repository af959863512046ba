package services

import (
	"SolidarityHospital/models"
	"SolidarityHospital/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MerchantMoMoNumber is the hospital's mobile money account.
const MerchantMoMoNumber = "652628916"

// DefaultAuthorizationDelay is how long the simulated gateway takes to answer.
const DefaultAuthorizationDelay = 2 * time.Second

var (
	ErrPaymentDeclined      = errors.New("payment authorization failed")
	ErrConfirmationRequired = errors.New("mobile money payment must be confirmed before it is processed")
)

// PaymentGateway authorizes a payment. A declined payment returns the authorization
// together with ErrPaymentDeclined.
type PaymentGateway interface {
	Authorize(ctx context.Context, details models.PaymentDetails) (models.Authorization, error)
}

// SimulatedGateway approves every payment whose fields pass validation after a fixed
// delay. No money moves.
type SimulatedGateway struct {
	delay time.Duration
	now   func() time.Time
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	if delay < 0 {
		delay = 0
	}
	return &SimulatedGateway{delay: delay, now: time.Now}
}

// Start launches an authorization task. The channel is buffered and always receives
// exactly one result, so callers may abandon it.
func (g *SimulatedGateway) Start(details models.PaymentDetails) <-chan models.Authorization {
	result := make(chan models.Authorization, 1)
	go func() {
		if g.delay > 0 {
			timer := time.NewTimer(g.delay)
			<-timer.C
		}
		result <- g.decide(details)
	}()
	return result
}

func (g *SimulatedGateway) Authorize(ctx context.Context, details models.PaymentDetails) (models.Authorization, error) {
	select {
	case auth := <-g.Start(details):
		if !auth.Approved {
			return auth, fmt.Errorf("%w: %s", ErrPaymentDeclined, auth.Message)
		}
		return auth, nil
	case <-ctx.Done():
		return models.Authorization{}, ctx.Err()
	}
}

func (g *SimulatedGateway) decide(details models.PaymentDetails) models.Authorization {
	auth := models.Authorization{
		Method:       details.Method,
		AuthorizedAt: g.now(),
	}
	if err := utils.ValidatePaymentDetails(details); err != nil {
		auth.Message = err.Error()
		return auth
	}
	auth.Approved = true
	auth.Reference = uuid.NewString()
	auth.Message = "Payment successful"
	return auth
}

// ConfirmationPrompt describes the simulated mobile money debit the payer must accept.
// It is empty for methods that need no confirmation.
func ConfirmationPrompt(details models.PaymentDetails) string {
	if !utils.IsMobileMoney(details.Method) {
		return ""
	}
	amount := details.Amount
	if amount == "" {
		amount, _ = utils.DefaultAmount(details.Method)
	}
	return fmt.Sprintf(
		"You are about to simulate a payment of %s FCFA using %s. No real money will be withdrawn. "+
			"%s FCFA would be withdrawn from your phone number %s and sent to the hospital's MoMo account (%s). "+
			"Do you want to proceed?",
		amount, details.Method, amount, utils.StripSpaces(details.PhoneNumber), MerchantMoMoNumber,
	)
}
