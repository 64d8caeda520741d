package payments

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"agency-console/internal/aggregate"
	"agency-console/internal/logger"
	"agency-console/internal/models"
)

var (
	ErrNotConfigured = errors.New("online payments are not configured")
	ErrNothingDue    = errors.New("invoice has no payable due")
)

// linkCreator is the payment link resource of the razorpay client.
type linkCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Link is a hosted payment page for one invoice.
type Link struct {
	ID       string          `json:"id"`
	ShortURL string          `json:"shortUrl"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
}

type Service struct {
	links linkCreator
	log   zerolog.Logger
}

// New returns a service backed by razorpay. Empty credentials leave the
// service disabled.
func New(keyID, keySecret string) *Service {
	s := &Service{log: logger.WithComponent("payments")}
	if keyID != "" && keySecret != "" {
		s.links = razorpay.NewClient(keyID, keySecret).PaymentLink
	}
	return s
}

func (s *Service) Enabled() bool {
	return s != nil && s.links != nil
}

// ToPaise converts rupees to the integer paise razorpay expects.
func ToPaise(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// LinkForInvoice creates a payment link for the invoice's payable due.
func (s *Service) LinkForInvoice(inv models.Invoice, client models.Client, callbackURL string) (*Link, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	due := aggregate.Settle(inv).Due
	if !due.IsPositive() {
		return nil, ErrNothingDue
	}

	data := map[string]interface{}{
		"amount":          ToPaise(due),
		"currency":        "INR",
		"accept_partial":  false,
		"reference_id":    inv.Number,
		"description":     fmt.Sprintf("Invoice %s", inv.Number),
		"reminder_enable": true,
		"customer": map[string]interface{}{
			"name":    client.Name,
			"email":   client.Email,
			"contact": client.Phone,
		},
		"notify": map[string]interface{}{
			"sms":   false,
			"email": false,
		},
		"notes": map[string]interface{}{
			"invoice_id": inv.ID,
			"client_id":  inv.ClientID,
		},
	}
	if callbackURL != "" {
		data["callback_url"] = callbackURL
		data["callback_method"] = "get"
	}

	resp, err := s.links.Create(data, nil)
	if err != nil {
		s.log.Error().Err(err).Str("invoice", inv.Number).Msg("Failed to create payment link")
		return nil, fmt.Errorf("failed to create razorpay payment link: %w", err)
	}

	link := &Link{Amount: due}
	link.ID, _ = resp["id"].(string)
	link.ShortURL, _ = resp["short_url"].(string)
	link.Status, _ = resp["status"].(string)
	if link.ID == "" || link.ShortURL == "" {
		return nil, fmt.Errorf("razorpay payment link response missing id or short_url")
	}

	s.log.Info().Str("invoice", inv.Number).Str("link_id", link.ID).Str("amount", due.StringFixed(2)).Msg("Payment link created")
	return link, nil
}
