package service

import (
	"errors"
	"testing"

	"devfolio/internal/domain"
	"devfolio/internal/repository/mocks"

	"github.com/stretchr/testify/mock"
)

func TestCounterService_BumpSwallowsFailures(t *testing.T) {
	store := &mocks.RecordStore[domain.Post]{}
	store.On("Name").Return(domain.CollectionPosts)
	store.On("Increment", mock.Anything, "abc", domain.FieldViews, 1).Return(errors.New("permission denied"))
	store.On("Increment", mock.Anything, "def", domain.FieldLikes, 1).Return(nil)

	counters := NewCounterService()
	counters.Bump(store, "abc", domain.FieldViews, 1)
	counters.Bump(store, "def", domain.FieldLikes, 1)
	counters.Wait()

	store.AssertNumberOfCalls(t, "Increment", 2)
}
