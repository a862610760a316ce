package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/internal/vectorstore"
)

// HistoryService exposes read and deletion access to stored QA history.
type HistoryService struct {
	store  vectorstore.Store
	logger *slog.Logger
}

// NewHistoryService creates a HistoryService. logger may be nil (slog default).
func NewHistoryService(store vectorstore.Store, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HistoryService{store: store, logger: logger}
}

// RecentByMember returns the member's newest documents, newest first.
func (s *HistoryService) RecentByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]models.QADocument, error) {
	docs, err := s.store.RecentByMember(ctx, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent questions for member: %w", err)
	}

	return docs, nil
}

// RecentByFamily returns up to perMember newest documents per family member.
func (s *HistoryService) RecentByFamily(ctx context.Context, familyID uuid.UUID, perMember int) ([]models.QADocument, error) {
	docs, err := s.store.RecentByFamily(ctx, familyID, perMember)
	if err != nil {
		return nil, fmt.Errorf("recent questions for family: %w", err)
	}

	return docs, nil
}

// ActivityByFamily returns up to perMember newest documents per member,
// keeping only those answered within the trailing window of days. Members who
// answered nothing in the window contribute nothing.
func (s *HistoryService) ActivityByFamily(ctx context.Context, familyID uuid.UUID, perMember, days int) ([]models.QADocument, error) {
	docs, err := s.store.RecentByFamily(ctx, familyID, perMember)
	if err != nil {
		return nil, fmt.Errorf("recent questions for family: %w", err)
	}

	active := make([]models.QADocument, 0, len(docs))
	for _, doc := range docs {
		if doc.IsRecent(days) {
			active = append(active, doc)
		}
	}

	return active, nil
}

// DeleteMemberHistory removes all of a member's stored documents (e.g. when a
// member leaves or requests erasure) and returns how many were removed.
// Zero removed is not an error.
func (s *HistoryService) DeleteMemberHistory(ctx context.Context, memberID uuid.UUID) (int, error) {
	deleted, err := s.store.DeleteByMember(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("delete member history: %w", err)
	}

	s.logger.Info("member history deleted", "member_id", memberID, "deleted", deleted)

	return deleted, nil
}
