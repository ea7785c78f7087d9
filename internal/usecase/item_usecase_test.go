package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/domain/entity"
	domainErrors "inventory-tracker/internal/domain/errors"
)

var errDisk = &domainErrors.StorageError{Op: "write", Path: "data.csv", Err: errors.New("disk full")}

func fixedClock() time.Time {
	return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
}

func TestNewItemUsecase(t *testing.T) {
	mockRepo := new(MockItemRepository)
	usecase := NewItemUsecase(mockRepo)

	assert.NotNil(t, usecase)
}

func TestItemUsecase_AddItem(t *testing.T) {
	tests := []struct {
		name        string
		input       AddItemInput
		setupMock   func(*MockItemRepository)
		expectedErr error
		wantUnit    string
	}{
		{
			name:  "valid item",
			input: AddItemInput{AddedBy: "bob", Name: "Widget", Quantity: "3", Unit: "box"},
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("NextID", mock.Anything).Return("4", nil)
				mockRepo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Item")).Return(nil)
			},
			wantUnit: "box",
		},
		{
			name:  "empty unit defaults to pcs",
			input: AddItemInput{AddedBy: "bob", Name: "Widget", Quantity: "3", Unit: ""},
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("NextID", mock.Anything).Return("4", nil)
				mockRepo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Item")).Return(nil)
			},
			wantUnit: "pcs",
		},
		{
			name:        "empty name",
			input:       AddItemInput{AddedBy: "bob", Name: "", Quantity: "5", Unit: "pcs"},
			setupMock:   func(mockRepo *MockItemRepository) {},
			expectedErr: domainErrors.NewValidationError(domainErrors.EmptyName),
		},
		{
			name:        "zero quantity",
			input:       AddItemInput{AddedBy: "bob", Name: "Widget", Quantity: "0", Unit: "pcs"},
			setupMock:   func(mockRepo *MockItemRepository) {},
			expectedErr: domainErrors.NewValidationError(domainErrors.NonPositiveQuantity),
		},
		{
			name:        "non numeric quantity",
			input:       AddItemInput{AddedBy: "bob", Name: "Widget", Quantity: "abc", Unit: "pcs"},
			setupMock:   func(mockRepo *MockItemRepository) {},
			expectedErr: domainErrors.NewValidationError(domainErrors.NotAnInteger),
		},
		{
			name:  "next id fails",
			input: AddItemInput{AddedBy: "bob", Name: "Widget", Quantity: "1"},
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("NextID", mock.Anything).Return("", errDisk)
			},
			expectedErr: errDisk,
		},
		{
			name:  "append fails",
			input: AddItemInput{AddedBy: "bob", Name: "Widget", Quantity: "1"},
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("NextID", mock.Anything).Return("1", nil)
				mockRepo.On("Append", mock.Anything, mock.AnythingOfType("*entity.Item")).Return(errDisk)
			},
			expectedErr: errDisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockItemRepository)
			tt.setupMock(mockRepo)
			usecase := NewItemUsecase(mockRepo, WithClock(fixedClock))

			item, err := usecase.AddItem(context.Background(), tt.input)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, item)
				if domainErrors.IsValidationError(tt.expectedErr) {
					mockRepo.AssertNotCalled(t, "NextID", mock.Anything)
					mockRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
				}
				mockRepo.AssertExpectations(t)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "4", item.ID)
			assert.Equal(t, "Widget", item.Name)
			assert.Equal(t, 3, item.Quantity)
			assert.Equal(t, tt.wantUnit, item.Unit)
			assert.Equal(t, "bob", item.AddedBy)
			assert.Equal(t, "2024-05-17", item.DateAdded)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestItemUsecase_ListItems(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockItemRepository)
		expectedCount int
		expectedErr   error
	}{
		{
			name: "several items",
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("FindAll", mock.Anything).Return(sampleItems(), nil)
			},
			expectedCount: 3,
		},
		{
			name: "empty table is not an error",
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("FindAll", mock.Anything).Return([]*entity.Item{}, nil)
			},
			expectedCount: 0,
		},
		{
			name: "storage error",
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("FindAll", mock.Anything).Return(nil, errDisk)
			},
			expectedErr: errDisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockItemRepository)
			tt.setupMock(mockRepo)
			usecase := NewItemUsecase(mockRepo)

			items, err := usecase.ListItems(context.Background())

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.True(t, domainErrors.IsStorageError(err))
				mockRepo.AssertExpectations(t)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, items, tt.expectedCount)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestItemUsecase_DeleteItem(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		setupMock   func(*MockItemRepository)
		wantDeleted bool
		expectedErr error
	}{
		{
			name: "existing id removes only that record",
			id:   "2",
			setupMock: func(mockRepo *MockItemRepository) {
				items := sampleItems()
				mockRepo.On("FindAll", mock.Anything).Return(items, nil)
				mockRepo.On("ReplaceAll", mock.Anything, []*entity.Item{items[0], items[2]}).Return(nil)
			},
			wantDeleted: true,
		},
		{
			name: "missing id does not write",
			id:   "99",
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("FindAll", mock.Anything).Return(sampleItems(), nil)
			},
			wantDeleted: false,
		},
		{
			name: "id match is exact string equality",
			id:   "02",
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("FindAll", mock.Anything).Return(sampleItems(), nil)
			},
			wantDeleted: false,
		},
		{
			name: "duplicate ids are all removed",
			id:   "7",
			setupMock: func(mockRepo *MockItemRepository) {
				items := []*entity.Item{{ID: "7", Name: "a"}, {ID: "8", Name: "b"}, {ID: "7", Name: "c"}}
				mockRepo.On("FindAll", mock.Anything).Return(items, nil)
				mockRepo.On("ReplaceAll", mock.Anything, []*entity.Item{items[1]}).Return(nil)
			},
			wantDeleted: true,
		},
		{
			name: "read fails",
			id:   "1",
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("FindAll", mock.Anything).Return(nil, errDisk)
			},
			expectedErr: errDisk,
		},
		{
			name: "write fails",
			id:   "1",
			setupMock: func(mockRepo *MockItemRepository) {
				mockRepo.On("FindAll", mock.Anything).Return(sampleItems(), nil)
				mockRepo.On("ReplaceAll", mock.Anything, mock.Anything).Return(errDisk)
			},
			expectedErr: errDisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockItemRepository)
			tt.setupMock(mockRepo)
			usecase := NewItemUsecase(mockRepo)

			deleted, err := usecase.DeleteItem(context.Background(), tt.id)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.False(t, deleted)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantDeleted, deleted)
			}
			if !tt.wantDeleted && tt.expectedErr == nil {
				mockRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
