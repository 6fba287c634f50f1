package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	stripesub "github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

var (
	ErrInvalidPlan      = errors.New("invalid plan")
	ErrNoBillingAccount = errors.New("no billing account for user")
	ErrBadWebhook       = errors.New("webhook verification failed")
)

// subscriptionRetriever fetches a Stripe subscription by id. Injected so
// webhook tests run without the network.
type subscriptionRetriever func(id string) (*stripe.Subscription, error)

// BillingService talks to Stripe and is the sole writer of Subscription
// billing state. Checkout plans: monthly and yearly_card are recurring,
// yearly_pix is a one-time payment granting a year.
type BillingService struct {
	subRepo     *repository.SubscriptionRepository
	cfg         *config.StripeConfig
	retrieveSub subscriptionRetriever
}

func NewBillingService(
	subRepo *repository.SubscriptionRepository,
	cfg *config.StripeConfig,
) *BillingService {
	stripe.Key = cfg.SecretKey
	return &BillingService{
		subRepo: subRepo,
		cfg:     cfg,
		retrieveSub: func(id string) (*stripe.Subscription, error) {
			return stripesub.Get(id, nil)
		},
	}
}

// CreateCheckoutSession starts a hosted checkout for the plan and returns
// its URL.
func (s *BillingService) CreateCheckoutSession(userID int64, userEmail, plan string) (string, error) {
	var priceID string
	mode := stripe.CheckoutSessionModeSubscription

	switch plan {
	case "monthly":
		priceID = s.cfg.PriceMonthly
	case "yearly_card":
		priceID = s.cfg.PriceYearlyCard
	case "yearly_pix":
		priceID = s.cfg.PriceYearlyPix
		mode = stripe.CheckoutSessionModePayment
	default:
		return "", ErrInvalidPlan
	}

	userIDStr := strconv.FormatInt(userID, 10)
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		CustomerEmail:     stripe.String(userEmail),
		ClientReferenceID: stripe.String(userIDStr),
	}
	params.AddMetadata("user_id", userIDStr)
	params.AddMetadata("plan", plan)

	if mode == stripe.CheckoutSessionModeSubscription {
		// carry identity onto the subscription so later invoices can be
		// attributed without a lookup table
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": userIDStr,
				"plan":    plan,
			},
		}
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// CreatePortalSession opens the Stripe customer portal for the user.
func (s *BillingService) CreatePortalSession(userID int64) (string, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		return "", err
	}
	if sub == nil || sub.ProviderCustomerID == nil || *sub.ProviderCustomerID == "" {
		return "", ErrNoBillingAccount
	}

	sess, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*sub.ProviderCustomerID),
		ReturnURL: stripe.String(s.cfg.PortalReturnURL),
	})
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// HandleWebhook verifies the signature and applies the event.
func (s *BillingService) HandleWebhook(payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.cfg.WebhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadWebhook, err)
	}
	return s.ApplyEvent(event)
}

// ApplyEvent mutates the stored Subscription for the events we care
// about. Unknown event types are logged and acknowledged.
func (s *BillingService) ApplyEvent(event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}
		return s.applyCheckoutCompleted(&sess)

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}
		return s.applyInvoicePaid(&invoice)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.applySubscriptionDeleted(&sub)

	case "invoice.payment_failed":
		log.Printf("billing: payment failed, event %s", event.ID)
		return nil

	default:
		log.Printf("billing: unhandled event type %s", event.Type)
		return nil
	}
}

// applyCheckoutCompleted handles the one-time yearly_pix purchase.
// Recurring plans activate on invoice.payment_succeeded instead.
func (s *BillingService) applyCheckoutCompleted(sess *stripe.CheckoutSession) error {
	if sess.Mode != stripe.CheckoutSessionModePayment {
		log.Printf("billing: subscription checkout completed: %s", sess.ID)
		return nil
	}

	userID, err := userIDFromMetadata(sess.Metadata)
	if err != nil || sess.Metadata["plan"] != "yearly_pix" {
		return nil
	}

	periodEnd := time.Now().AddDate(1, 0, 0)
	sub := &model.Subscription{
		UserID:           userID,
		Status:           model.SubStatusPremium,
		Plan:             model.PlanYearly,
		Provider:         "stripe",
		CurrentPeriodEnd: &periodEnd,
	}
	if sess.Customer != nil {
		sub.ProviderCustomerID = &sess.Customer.ID
	}
	return s.subRepo.Upsert(sub)
}

func (s *BillingService) applyInvoicePaid(invoice *stripe.Invoice) error {
	if invoice.Subscription == nil {
		return nil
	}

	stripeSub, err := s.retrieveSub(invoice.Subscription.ID)
	if err != nil {
		return err
	}

	userID, err := userIDFromMetadata(stripeSub.Metadata)
	if err != nil {
		log.Printf("billing: invoice %s has no attributable user", invoice.ID)
		return nil
	}

	plan := model.PlanYearly
	if stripeSub.Metadata["plan"] == "monthly" {
		plan = model.PlanMonthly
	}

	periodEnd := time.Unix(stripeSub.CurrentPeriodEnd, 0)
	sub := &model.Subscription{
		UserID:           userID,
		Status:           model.SubStatusPremium,
		Plan:             plan,
		Provider:         "stripe",
		CurrentPeriodEnd: &periodEnd,
	}
	if invoice.Customer != nil {
		sub.ProviderCustomerID = &invoice.Customer.ID
	}
	return s.subRepo.Upsert(sub)
}

func (s *BillingService) applySubscriptionDeleted(stripeSub *stripe.Subscription) error {
	userID, err := userIDFromMetadata(stripeSub.Metadata)
	if err != nil {
		return nil
	}
	return s.subRepo.UpdateStatus(userID, model.SubStatusCanceled)
}

func userIDFromMetadata(metadata map[string]string) (int64, error) {
	raw, ok := metadata["user_id"]
	if !ok {
		return 0, errors.New("missing user_id metadata")
	}
	return strconv.ParseInt(raw, 10, 64)
}
