package service

import (
	"context"
	"log/slog"

	"github.com/famring/hearth/internal/assignment"
	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/internal/observability"
)

// AssignmentService exposes the weighted fair-assignment sampler.
type AssignmentService struct {
	metrics observability.SamplerMetrics
	logger  *slog.Logger
}

// NewAssignmentService creates an AssignmentService.
// metrics may be nil (metrics disabled); logger may be nil (slog default).
func NewAssignmentService(metrics observability.SamplerMetrics, logger *slog.Logger) *AssignmentService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AssignmentService{metrics: metrics, logger: logger}
}

// SampleAssignment picks pickCount members for the next dispatch cycle,
// favoring members with fewer recent assignments. epsilon <= 0 selects the
// default weight floor. Invalid arguments are hard failures (ValidationError).
func (s *AssignmentService) SampleAssignment(
	ctx context.Context, members []models.MemberAssignmentStat, pickCount int, epsilon float64,
) (models.SamplingResult, error) {
	result, err := assignment.Sample(members, pickCount, epsilon)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError(ctx, "invalid_arguments")
		}

		return models.SamplingResult{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordDraws(ctx, int64(len(result.MemberIDs)))
	}

	s.logger.Info("assignment sampled",
		"candidates", len(members),
		"picked", len(result.MemberIDs),
		"version", result.Version,
	)

	return result, nil
}
