package service

import (
	"context"
	"testing"

	"eventbooking/internal/model"
	apperrors "eventbooking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureProfile(t *testing.T) {
	ctx := context.Background()
	principal := model.Principal{
		UserID: "auth0|abc123",
		Name:   "Alice Chen",
		Email:  "alice@example.com",
		Role:   model.RoleMember,
	}

	t.Run("existing profile returned as is", func(t *testing.T) {
		repo := new(MemberRepositoryMock)
		svc := NewMemberService(repo)
		existing := &model.Member{ID: 7, FullName: "Alice Chen"}

		repo.On("FindByUserID", mock.Anything, "auth0|abc123").Return(existing, nil)

		member, err := svc.EnsureProfile(ctx, principal)

		require.NoError(t, err)
		assert.Equal(t, existing, member)
		repo.AssertNotCalled(t, "UpsertByUserID", mock.Anything, mock.Anything)
	})

	t.Run("missing profile provisioned with placeholder contact", func(t *testing.T) {
		repo := new(MemberRepositoryMock)
		svc := NewMemberService(repo)
		provisioned := &model.Member{ID: 8, FullName: "Alice Chen"}

		repo.On("FindByUserID", mock.Anything, "auth0|abc123").Return(nil, apperrors.ErrMemberNotFound).Once()
		repo.On("UpsertByUserID", mock.Anything, mock.MatchedBy(func(m *model.Member) bool {
			return m.FullName == "Alice Chen" && m.Phone == "0000000000" && m.UserID != nil && *m.UserID == "auth0|abc123"
		})).Return(nil)
		repo.On("FindByUserID", mock.Anything, "auth0|abc123").Return(provisioned, nil).Once()

		member, err := svc.EnsureProfile(ctx, principal)

		require.NoError(t, err)
		assert.Equal(t, provisioned, member)
		repo.AssertExpectations(t)
	})

	t.Run("name falls back to email local-part", func(t *testing.T) {
		repo := new(MemberRepositoryMock)
		svc := NewMemberService(repo)
		anonymous := model.Principal{UserID: "u1", Email: "bob@example.com", Role: model.RoleMember}

		repo.On("FindByUserID", mock.Anything, "u1").Return(nil, apperrors.ErrMemberNotFound).Once()
		repo.On("UpsertByUserID", mock.Anything, mock.MatchedBy(func(m *model.Member) bool {
			return m.FullName == "bob"
		})).Return(nil)
		repo.On("FindByUserID", mock.Anything, "u1").Return(&model.Member{ID: 9}, nil).Once()

		_, err := svc.EnsureProfile(ctx, anonymous)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty principal id", func(t *testing.T) {
		repo := new(MemberRepositoryMock)
		svc := NewMemberService(repo)

		_, err := svc.EnsureProfile(ctx, model.Principal{})

		assert.ErrorIs(t, err, apperrors.ErrMemberResolution)
	})
}

func TestCreateMember(t *testing.T) {
	repo := new(MemberRepositoryMock)
	svc := NewMemberService(repo)
	prefs := "aisle seats"

	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Member) bool {
		return m.FullName == "Carol" && m.Email == "carol@example.com" &&
			m.Phone == "0912345678" && m.UserID == nil
	})).Return(&model.Member{ID: 3, FullName: "Carol"}, nil)

	member, err := svc.Create(context.Background(), model.CreateMemberRequest{
		FullName:    "Carol",
		Email:       "carol@example.com",
		Phone:       "0912345678",
		Preferences: &prefs,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, member.ID)
	repo.AssertExpectations(t)
}
