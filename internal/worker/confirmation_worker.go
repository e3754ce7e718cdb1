package worker

import (
	"context"
	"errors"
	"eventbooking/internal/queue"
	"eventbooking/internal/repository"
	apperrors "eventbooking/pkg/app_errors"
	"eventbooking/pkg/logger"

	"go.uber.org/zap"
)

// ConfirmationWorker 消費訂票確認訊息並記錄出票結果
type ConfirmationWorker interface {
	Start(ctx context.Context) error
}

type ConfirmationWorkerImpl struct {
	bookingRepo repository.BookingRepository
	queue       queue.ConfirmationQueue
}

func NewConfirmationWorker(bookingRepo repository.BookingRepository, queue queue.ConfirmationQueue) ConfirmationWorker {
	return &ConfirmationWorkerImpl{
		bookingRepo: bookingRepo,
		queue:       queue,
	}
}

func (w *ConfirmationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeConfirmations(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("worker")
		for msg := range msgs {
			booking, err := w.bookingRepo.FindByID(ctx, msg.Data.ID)
			if err != nil {
				if errors.Is(err, apperrors.ErrBookingNotFound) {
					// 訊息落後於刪除（例如活動已被清除），丟棄即可
					msg.Ack()
					continue
				}
				// 暫時性錯誤，留待重試
				msg.Nack(true)
				continue
			}

			fields := []zap.Field{
				zap.Int("booking_id", booking.ID),
				zap.String("ticket_code", booking.TicketCode.String()),
				zap.Int("quantity", booking.Quantity),
				zap.Int("member_id", booking.MemberID),
				zap.Int("event_id", booking.EventID),
			}
			if booking.Event != nil {
				fields = append(fields, zap.String("event_title", booking.Event.Title))
			}
			log.Info("ticket issued", fields...)

			msg.Ack()
		}
	}()
	return nil
}
