// internal/service/entitlement.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/equitylearn/entitlements/internal/cache"
	"github.com/equitylearn/entitlements/internal/domain"
	"github.com/equitylearn/entitlements/internal/model"
	"github.com/equitylearn/entitlements/internal/repository"
	"github.com/google/uuid"
)

// EntitlementService resolves a caller's effective organization, tier, seat
// state and feature flags.
//
// Resolution is fail-open: a dependency error on any lookup step is treated
// as "that step's data is absent" and resolution degrades to a permissive
// default rather than failing. The error is still returned alongside the
// degraded result so that hard gating decisions (the Action Gate) can fail
// closed on it. The internal-role bypass is evaluated before any subscription
// lookup and is never skipped, including under downstream errors.
type EntitlementService struct {
	profiles repository.ProfileRepositoryIface
	subs     repository.SubscriptionRepositoryIface
	seats    repository.SeatAllocationRepositoryIface
	cache    cache.Store
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewEntitlementService(
	profiles repository.ProfileRepositoryIface,
	subs repository.SubscriptionRepositoryIface,
	seats repository.SeatAllocationRepositoryIface,
	store cache.Store,
	cacheTTL time.Duration,
	log *slog.Logger,
) *EntitlementService {
	if store == nil {
		store = cache.NoOp{}
	}
	return &EntitlementService{
		profiles: profiles,
		subs:     subs,
		seats:    seats,
		cache:    store,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func entitlementsCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("entitlements:%s", userID)
}

// Resolve computes the caller's entitlements from current persisted state.
//
// The returned entitlements are always usable. A non-nil error means a
// dependency failed during resolution and the result is a permissive
// degraded default; soft feature checks ignore the error, the Action Gate
// treats it as a denial.
func (s *EntitlementService) Resolve(ctx context.Context, userID uuid.UUID) (*model.UserEntitlements, error) {
	cacheKey := entitlementsCacheKey(userID)
	var cached model.UserEntitlements
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	ents, err := s.resolve(ctx, userID)
	if err == nil {
		if cacheErr := s.cache.Set(ctx, cacheKey, ents, s.cacheTTL); cacheErr != nil {
			s.log.Warn("failed to cache entitlements", "user_id", userID, "error", cacheErr)
		}
	}
	return ents, err
}

func (s *EntitlementService) resolve(ctx context.Context, userID uuid.UUID) (*model.UserEntitlements, error) {
	// Step 1: identity lookup. The internal-role bypass is decided here,
	// before any subscription data is touched.
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		s.log.Warn("entitlement resolution degraded: profile lookup failed",
			"user_id", userID, "error", err)
		return s.individualFree(userID), fmt.Errorf("looking up profile: %w", err)
	}

	if profile != nil {
		identity := model.IdentityFor(profile)
		if identity.Internal {
			return s.internalEntitlements(identity), nil
		}
	}

	// Step 2: no organization means an individual free-tier entitlement.
	if profile == nil || profile.OrganizationID == nil {
		return s.individualFree(userID), nil
	}
	orgID := *profile.OrganizationID

	// Step 3: subscription lookup. Organizations without a subscription row
	// implicitly admit everyone on the free tier.
	sub, err := s.subs.FindByOrganization(ctx, orgID)
	if err != nil {
		var depErr error
		if !errors.Is(err, domain.ErrSubscriptionNotFound) {
			s.log.Warn("entitlement resolution degraded: subscription lookup failed",
				"user_id", userID, "org_id", orgID, "error", err)
			depErr = fmt.Errorf("looking up subscription: %w", err)
		}
		ents := s.organizationFree(userID, orgID)
		return ents, depErr
	}

	// Step 4: seat check. Free tier does not enforce seats.
	hasSeat := sub.Tier == model.TierFree
	if !hasSeat {
		seat, seatErr := s.seats.FindBySubscriptionAndUser(ctx, sub.ID, userID)
		if seatErr != nil && !errors.Is(seatErr, domain.ErrSeatNotFound) {
			s.log.Warn("entitlement resolution degraded: seat lookup failed",
				"user_id", userID, "subscription_id", sub.ID, "error", seatErr)
			ents := s.fromSubscription(userID, orgID, sub, false)
			return ents, fmt.Errorf("looking up seat: %w", seatErr)
		}
		hasSeat = seat != nil && seat.Status == model.SeatActive
	}

	// Step 5: flatten the tier definition onto the result.
	return s.fromSubscription(userID, orgID, sub, hasSeat), nil
}

func (s *EntitlementService) fromSubscription(userID uuid.UUID, orgID uuid.UUID, sub *model.OrganizationSubscription, hasSeat bool) *model.UserEntitlements {
	def := model.TierFor(sub.Tier)
	return &model.UserEntitlements{
		UserID:         userID,
		OrganizationID: &orgID,
		Tier:           sub.Tier,
		Status:         sub.Status,
		SeatCount:      sub.SeatCount,
		SeatsUsed:      sub.SeatsUsed,
		SeatsAvailable: sub.SeatsAvailable(),
		HasSeat:        hasSeat,
		InGracePeriod:  sub.InGracePeriod(time.Now().UTC()),
		Features:       def.Features,
		Limits:         def,
	}
}

// internalEntitlements is the hard override for staff roles: enterprise tier,
// unlimited seats, every feature on, regardless of any subscription rows.
func (s *EntitlementService) internalEntitlements(identity model.Identity) *model.UserEntitlements {
	def := model.TierFor(model.TierEnterprise)
	return &model.UserEntitlements{
		UserID:         identity.UserID,
		OrganizationID: identity.OrganizationID,
		Tier:           model.TierEnterprise,
		Status:         model.SubStatusActive,
		SeatCount:      model.Unlimited,
		SeatsUsed:      0,
		SeatsAvailable: model.Unlimited,
		HasSeat:        true,
		Internal:       true,
		Features:       def.Features,
		Limits:         def,
	}
}

// individualFree is the synthetic entitlement for users outside any
// organization: a single occupied seat on the free tier.
func (s *EntitlementService) individualFree(userID uuid.UUID) *model.UserEntitlements {
	def := model.TierFor(model.TierFree)
	return &model.UserEntitlements{
		UserID:         userID,
		Tier:           model.TierFree,
		Status:         model.SubStatusActive,
		SeatCount:      1,
		SeatsUsed:      1,
		SeatsAvailable: 0,
		HasSeat:        true,
		Features:       def.Features,
		Limits:         def,
	}
}

// organizationFree covers organizations with no subscription record.
func (s *EntitlementService) organizationFree(userID uuid.UUID, orgID uuid.UUID) *model.UserEntitlements {
	def := model.TierFor(model.TierFree)
	return &model.UserEntitlements{
		UserID:         userID,
		OrganizationID: &orgID,
		Tier:           model.TierFree,
		Status:         model.SubStatusActive,
		SeatCount:      model.Unlimited,
		SeatsUsed:      0,
		SeatsAvailable: model.Unlimited,
		HasSeat:        true,
		Features:       def.Features,
		Limits:         def,
	}
}

// ResolveIdentity returns who is calling without touching subscription data.
func (s *EntitlementService) ResolveIdentity(ctx context.Context, userID uuid.UUID) (model.Identity, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return model.Identity{}, err
	}
	return model.IdentityFor(profile), nil
}

// Invalidate drops the cached entitlements for a user. Called on every seat
// or subscription write affecting that user.
func (s *EntitlementService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, entitlementsCacheKey(userID)); err != nil {
		s.log.Warn("failed to invalidate entitlement cache", "user_id", userID, "error", err)
	}
}
