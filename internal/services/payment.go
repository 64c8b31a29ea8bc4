package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"idlegrow/internal/datastore"
	"idlegrow/internal/models"
	"idlegrow/internal/pkg/caching"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/uptrace/bun"
)

// ServicePayment sells gem packs through Stripe Checkout. The grant
// happens on verify, gated by the pending→completed flip, so replaying
// a verify call never double-credits.
type ServicePayment struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache

	servicePlayer *ServicePlayer
}

func NewServicePayment(container *do.Injector) (*ServicePayment, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	servicePlayer, err := do.Invoke[*ServicePlayer](container)
	if err != nil {
		return nil, err
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	return &ServicePayment{container, postgresDB, cache, servicePlayer}, nil
}

type CreatePaymentResult struct {
	PurchaseID  string `json:"purchase_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

func (service *ServicePayment) CreatePayment(ctx context.Context, player *models.Player, itemSlug string) (*CreatePaymentResult, error) {
	item := models.FindStoreItem(itemSlug)
	if item == nil {
		return nil, errorx.Wrap(errors.New("store item not found"), errorx.NotExist)
	}

	purchaseID := uuid.NewString()

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s %s", item.Emoji, item.Name)),
					},
					UnitAmount: stripe.Int64(item.PriceUSDCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(os.Getenv("STRIPE_SUCCESS_URL")),
		CancelURL:         stripe.String(os.Getenv("STRIPE_CANCEL_URL")),
		ClientReferenceID: stripe.String(purchaseID),
	}
	params.Context = ctx

	checkoutSession, err := session.New(params)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	err = datastore.InsertGemPurchase(ctx, service.postgresDB, &models.GemPurchase{
		ID:              purchaseID,
		UserID:          player.ID,
		ItemSlug:        item.Slug,
		GemAmount:       item.GemAmount,
		PriceUSDCents:   item.PriceUSDCents,
		GrantsPremium:   item.GrantsPremium,
		StripeSessionID: checkoutSession.ID,
		Status:          models.PURCHASE_STATUS_PENDING,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return &CreatePaymentResult{
		PurchaseID:  purchaseID,
		SessionID:   checkoutSession.ID,
		CheckoutURL: checkoutSession.URL,
	}, nil
}

type VerifyPaymentResult struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	GemAmount int64  `json:"gem_amount,omitempty"`
}

// resolveExistingPurchase answers ownership and the already-completed
// short-circuit. A nil result means the purchase is still pending and
// needs a Stripe check.
func resolveExistingPurchase(purchase *models.GemPurchase, playerID int64) (*VerifyPaymentResult, error) {
	if purchase.UserID != playerID {
		return nil, errorx.Wrap(errors.New("purchase belongs to another player"), errorx.Invalid)
	}

	if purchase.Status == models.PURCHASE_STATUS_COMPLETED {
		return &VerifyPaymentResult{Success: true, Status: purchase.Status, GemAmount: purchase.GemAmount}, nil
	}

	return nil, nil
}

func (service *ServicePayment) VerifyPayment(ctx context.Context, player *models.Player, sessionID string) (*VerifyPaymentResult, error) {
	purchase, err := datastore.GetGemPurchaseBySession(ctx, service.postgresDB, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(errors.New("purchase not found"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if result, err := resolveExistingPurchase(purchase, player.ID); err != nil || result != nil {
		return result, err
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	checkoutSession, err := session.Get(sessionID, params)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if checkoutSession.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return &VerifyPaymentResult{Success: false, Status: purchase.Status}, nil
	}

	completed, err := datastore.MarkPurchaseCompleted(ctx, service.postgresDB, purchase.ID, time.Now())
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !completed {
		// Raced with another verify call that already granted.
		return &VerifyPaymentResult{Success: true, Status: models.PURCHASE_STATUS_COMPLETED, GemAmount: purchase.GemAmount}, nil
	}

	err = service.servicePlayer.AddGems(ctx, player.ID, purchase.GemAmount, fmt.Sprintf("purchase:%s", purchase.ID))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if purchase.GrantsPremium {
		if err := datastore.SetPlayerPremium(ctx, service.postgresDB, player.ID); err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
		// nolint:errcheck
		service.cache.Delete(ctx, DBKeyPlayer(player.ID))
	}

	return &VerifyPaymentResult{Success: true, Status: models.PURCHASE_STATUS_COMPLETED, GemAmount: purchase.GemAmount}, nil
}
