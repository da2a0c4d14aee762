package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/library-service/internal/domain"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

func newMemberFixture() (*MemberService, *fakeMemberRepo, *fakeTransactionRepo) {
	books := newFakeBookRepo()
	members := newFakeMemberRepo()
	txns := newFakeTransactionRepo(books, members)
	return NewMemberService(members, txns), members, txns
}

func TestGetMemberPopulatesTransactionLists(t *testing.T) {
	svc, members, txns := newMemberFixture()
	active := txns.seed(domain.Transaction{BookID: "B-1", TransactionStatus: domain.TransactionStatusActive})
	previous := txns.seed(domain.Transaction{BookID: "B-2", TransactionStatus: domain.TransactionStatusCompleted})
	member := members.seed(domain.Member{
		Email:              "ada@example.com",
		UserType:           domain.UserTypeStudent,
		ActiveTransactions: []string{active.ID},
		PrevTransactions:   []string{previous.ID},
	})

	detail, err := svc.GetMember(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, detail.ActiveTransactions, 1)
	require.Len(t, detail.PrevTransactions, 1)
	assert.Equal(t, active.ID, detail.ActiveTransactions[0].ID)
	assert.Equal(t, previous.ID, detail.PrevTransactions[0].ID)
}

func TestGetMemberNotFound(t *testing.T) {
	svc, _, _ := newMemberFixture()

	_, err := svc.GetMember(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestListMembersExcludesAdminAccounts(t *testing.T) {
	svc, members, _ := newMemberFixture()
	members.seed(domain.Member{Email: "student@example.com", UserType: domain.UserTypeStudent})
	members.seed(domain.Member{Email: "staff@example.com", UserType: domain.UserTypeStaff})
	members.seed(domain.Member{Email: "admin@example.com", UserType: domain.UserTypeAdmin})

	list, err := svc.ListMembers(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, detail := range list {
		assert.NotEqual(t, domain.UserTypeAdmin, detail.Member.UserType)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, members, _ := newMemberFixture()
	member := members.seed(domain.Member{Email: "ada@example.com", UserType: domain.UserTypeStudent, Age: 20})

	updated, err := svc.UpdateProfile(context.Background(), member.ID, ProfileInput{
		Age: 29, Gender: "female", DOB: "1997-01-01", Address: "12 Analytical Way",
	})
	require.NoError(t, err)
	assert.Equal(t, 29, updated.Age)
	assert.Equal(t, "12 Analytical Way", updated.Address)
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc, _, _ := newMemberFixture()

	_, err := svc.UpdateProfile(context.Background(), "missing", ProfileInput{Age: 30})
	require.Error(t, err)
	assert.Equal(t, "user not found", apperrors.ToDomainError(err).Message)
}

func TestSetPhoto(t *testing.T) {
	svc, members, _ := newMemberFixture()
	member := members.seed(domain.Member{Email: "ada@example.com", UserType: domain.UserTypeStudent})

	updated, err := svc.SetPhoto(context.Background(), member.ID, "/uploads/ada.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/ada.png", updated.Photo)
}
