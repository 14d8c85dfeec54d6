package usecase_test

import (
	"context"
	"testing"

	"github.com/SafatUddin/CAR-Hub/internal/domain/model"
	"github.com/SafatUddin/CAR-Hub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationUsecase_List_Unauthorized(t *testing.T) {
	uc := usecase.NewNotificationUsecase(new(NotificationRepoMock))

	_, err := uc.List(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}

func TestNotificationUsecase_List(t *testing.T) {
	notifications := new(NotificationRepoMock)
	notifications.On("ListByUser", mock.Anything, int64(1)).Return([]model.Notification{
		{ID: 2, UserID: 1, Message: "newer", IsRead: false},
		{ID: 1, UserID: 1, Message: "older", IsRead: true},
	}, nil)

	uc := usecase.NewNotificationUsecase(notifications)

	outs, err := uc.List(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, "newer", outs[0].Message)
	assert.False(t, outs[0].IsRead)
}

func TestNotificationUsecase_UnreadCount(t *testing.T) {
	notifications := new(NotificationRepoMock)
	notifications.On("CountUnread", mock.Anything, int64(1)).Return(int64(3), nil)

	uc := usecase.NewNotificationUsecase(notifications)

	count, err := uc.UnreadCount(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestNotificationUsecase_MarkAllRead(t *testing.T) {
	notifications := new(NotificationRepoMock)
	notifications.On("MarkAllRead", mock.Anything, int64(1)).Return(nil)

	uc := usecase.NewNotificationUsecase(notifications)

	assert.NoError(t, uc.MarkAllRead(context.Background(), 1))
	notifications.AssertExpectations(t)
}
