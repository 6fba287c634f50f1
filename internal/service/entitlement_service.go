package service

import (
	"log"
	"time"

	"github.com/serenity-ai/serenity-server/internal/model"
	"github.com/serenity-ai/serenity-server/internal/repository"
)

// EntitlementService decides whether a user currently has unrestricted
// (premium) access. Two independent sources are consulted and combined as
// an OR: the billing-driven Subscription and the admin-granted UserPlan
// override. Each expires on its own deadline.
//
// Store failures degrade the user to the free tier instead of blocking
// them: a broken entitlement check must never lock a paying user out of
// the app entirely, only out of unlimited usage.
type EntitlementService struct {
	subRepo  *repository.SubscriptionRepository
	planRepo *repository.UserPlanRepository
}

func NewEntitlementService(
	subRepo *repository.SubscriptionRepository,
	planRepo *repository.UserPlanRepository,
) *EntitlementService {
	return &EntitlementService{
		subRepo:  subRepo,
		planRepo: planRepo,
	}
}

// EffectiveStatus recomputes the subscription status against its deadline
// at read time. Stored status is only trusted when the deadline has not
// passed; there is no background sweep.
func EffectiveStatus(sub *model.Subscription, now time.Time) string {
	if sub == nil {
		return model.SubStatusExpired
	}

	switch sub.Status {
	case model.SubStatusTrial:
		if sub.TrialEnd == nil || sub.TrialEnd.After(now) {
			return model.SubStatusTrial
		}
		return model.SubStatusExpired
	case model.SubStatusActive, model.SubStatusPremium:
		if sub.CurrentPeriodEnd == nil || sub.CurrentPeriodEnd.After(now) {
			return sub.Status
		}
		return model.SubStatusExpired
	default:
		return sub.Status
	}
}

// IsPremium reports whether either entitlement source grants the user
// unlimited access right now.
func (s *EntitlementService) IsPremium(userID int64) bool {
	now := time.Now()
	return s.subscriptionPremium(userID, now) || s.overridePremium(userID, now)
}

func (s *EntitlementService) subscriptionPremium(userID int64, now time.Time) bool {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		log.Printf("entitlement: subscription lookup failed for user %d: %v", userID, err)
		return false
	}
	if sub == nil {
		return false
	}

	effective := EffectiveStatus(sub, now)
	switch effective {
	case model.SubStatusTrial, model.SubStatusActive, model.SubStatusPremium:
		return true
	}

	// Self-healing read: persist the recomputed status so later reads and
	// admin tooling see the truth. Best effort, the read result stands.
	if effective == model.SubStatusExpired && sub.Status != model.SubStatusExpired {
		if err := s.subRepo.UpdateStatus(userID, model.SubStatusExpired); err != nil {
			log.Printf("entitlement: failed to mark subscription expired for user %d: %v", userID, err)
		}
	}
	return false
}

func (s *EntitlementService) overridePremium(userID int64, now time.Time) bool {
	plan, err := s.planRepo.GetByUserID(userID)
	if err != nil {
		log.Printf("entitlement: plan override lookup failed for user %d: %v", userID, err)
		return false
	}
	if plan == nil || !plan.IsPremium {
		return false
	}
	return plan.PremiumUntil == nil || plan.PremiumUntil.After(now)
}
