package quote

import (
	"context"
	"errors"
	"math"
	"strings"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/service/manager"
	"animateme/internal/settings"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrNoEstimate is returned when a request cannot be priced.
var ErrNoEstimate = errors.New("estimate unavailable for the selected type and style")

// Estimate prices an animation: base cost per second times duration in
// seconds times the style multiplier, rounded to the nearest unit.
func Estimate(baseCostPerSecond, durationMinutes, styleMultiplier float64) int64 {
	if durationMinutes <= 0 {
		return 0
	}
	return int64(math.Round(baseCostPerSecond * durationMinutes * 60 * styleMultiplier))
}

type SnapshotSource interface {
	Snapshot() *settings.Snapshot
}

type RequestWriter interface {
	Insert(ctx context.Context, q domain.QuoteRequest) (*domain.QuoteRequest, error)
}

type Service struct {
	snapshots SnapshotSource
	requests  RequestWriter
	validate  *validator.Validate
	logger    *zap.Logger
}

func New(snapshots SnapshotSource, requests RequestWriter, logger *zap.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		requests:  requests,
		validate:  manager.NewValidator(),
		logger:    logging.OrNop(logger),
	}
}

// EstimateResult is the calculator's answer.
type EstimateResult struct {
	AnimationType   string  `json:"animation_type"`
	AnimationStyle  string  `json:"animation_style"`
	DurationMinutes float64 `json:"duration_minutes"`
	DurationSeconds float64 `json:"duration_seconds"`
	BaseCost        float64 `json:"base_cost"`
	CostMultiplier  float64 `json:"cost_multiplier"`
	Estimate        int64   `json:"estimate"`
}

// Estimate resolves type and style against the current snapshot. Unknown
// values estimate to zero.
func (s *Service) Estimate(_ context.Context, typeValue, styleValue string, minutes float64) EstimateResult {
	res := EstimateResult{
		AnimationType:   typeValue,
		AnimationStyle:  styleValue,
		DurationMinutes: minutes,
		DurationSeconds: minutes * 60,
	}
	snap := s.snapshots.Snapshot()
	t, okType := snap.AnimationType(typeValue)
	st, okStyle := snap.AnimationStyle(styleValue)
	if !okType || !okStyle {
		return res
	}
	res.BaseCost = t.BaseCost
	res.CostMultiplier = st.CostMultiplier
	res.Estimate = Estimate(t.BaseCost, minutes, st.CostMultiplier)
	return res
}

// RequestInput is a visitor's quote request. Duration is in minutes.
type RequestInput struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	AnimationType   string  `json:"animation_type" validate:"required"`
	AnimationStyle  string  `json:"animation_style" validate:"required"`
	DurationMinutes float64 `json:"duration" validate:"gt=0"`
	Message         string  `json:"message"`
}

// Submit prices and stores a request. The stored duration is in seconds.
func (s *Service) Submit(ctx context.Context, in RequestInput) (*domain.QuoteRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := manager.ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}

	est := s.Estimate(ctx, in.AnimationType, in.AnimationStyle, in.DurationMinutes)
	if est.Estimate == 0 {
		return nil, ErrNoEstimate
	}

	saved, err := s.requests.Insert(ctx, domain.QuoteRequest{
		AnimationType:  in.AnimationType,
		AnimationStyle: in.AnimationStyle,
		Duration:       est.DurationSeconds,
		EstimatedPrice: est.Estimate,
		Name:           in.Name,
		Email:          in.Email,
		Message:        in.Message,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("quote request received", zap.String("id", saved.ID), zap.Int64("estimate", saved.EstimatedPrice))
	return saved, nil
}
