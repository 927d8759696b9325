package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"griyapasar/internal/domain/entity"
)

// Labels are memoized per view only: a rename must show up on the next
// request without a process restart.
func TestPropertyDetailReflectsOwnerRenameAcrossRequests(t *testing.T) {
	owner := &entity.User{ID: "budi", DisplayName: "Budi Santoso"}
	users := &fakeUserRepo{users: map[string]*entity.User{"budi": owner}}
	properties := &fakePropertyRepo{properties: map[string]*entity.Property{
		"prop-1": {ID: "prop-1", OwnerID: "budi", Title: "Rumah Menteng"},
	}}
	uc := NewPropertyUseCase(properties, EntityResolverFactory(users, properties, &fakeProviderRepo{}))

	detail, err := uc.GetDetail(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", detail.OwnerLabel)

	owner.DisplayName = "Budi S. Wibowo"

	detail, err = uc.GetDetail(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, "Budi S. Wibowo", detail.OwnerLabel)
}
