package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// MemberService exposes borrower account reads and profile updates. Member
// fetches dereference the transaction ids in both relation lists and embed
// the full ledger records; the ledger remains the owner of those records.
type MemberService struct {
	members      repository.MemberRepository
	transactions repository.TransactionRepository
}

// MemberDetail pairs a member with the dereferenced ledger entries for
// both relation lists.
type MemberDetail struct {
	Member             *domain.Member
	ActiveTransactions []domain.Transaction
	PrevTransactions   []domain.Transaction
}

// ProfileInput carries updatable profile attributes.
type ProfileInput struct {
	Age     int
	Gender  string
	DOB     string
	Address string
}

// NewMemberService constructs the service.
func NewMemberService(members repository.MemberRepository, transactions repository.TransactionRepository) *MemberService {
	return &MemberService{members: members, transactions: transactions}
}

// GetMember fetches a member with transactions joined in.
func (s *MemberService) GetMember(ctx context.Context, id string) (*MemberDetail, error) {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return s.withTransactions(ctx, member)
}

// ListMembers returns all borrower accounts with transactions joined in.
func (s *MemberService) ListMembers(ctx context.Context) ([]MemberDetail, error) {
	members, err := s.members.ListMembers(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	details := make([]MemberDetail, 0, len(members))
	for i := range members {
		detail, err := s.withTransactions(ctx, &members[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// UpdateProfile overwrites the mutable profile attributes.
func (s *MemberService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*domain.Member, error) {
	if err := s.members.UpdateProfile(ctx, id, input.Age, input.Gender, input.DOB, input.Address); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// SetPhoto stores the member's photo reference.
func (s *MemberService) SetPhoto(ctx context.Context, id, photo string) (*domain.Member, error) {
	if err := s.members.UpdatePhoto(ctx, id, photo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

func (s *MemberService) withTransactions(ctx context.Context, member *domain.Member) (*MemberDetail, error) {
	active, err := s.transactions.ListByIDs(ctx, member.ActiveTransactions)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	previous, err := s.transactions.ListByIDs(ctx, member.PrevTransactions)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &MemberDetail{
		Member:             member,
		ActiveTransactions: active,
		PrevTransactions:   previous,
	}, nil
}
