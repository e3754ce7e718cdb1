package queue

import (
	"context"
	"eventbooking/internal/model"
)

type Delivery struct {
	Data *model.Booking
	Ack  func()
	Nack func(requeue bool)
}

// ConfirmationQueue 訂票成功後的確認通知隊列。
// 訂票本身在資料庫交易內同步完成；隊列只承載 commit 之後的確認派送。
type ConfirmationQueue interface {
	// PublishConfirmation 發送確認訊息
	PublishConfirmation(ctx context.Context, booking *model.Booking) error
	// SubscribeConfirmations 訂閱確認訊息
	SubscribeConfirmations(ctx context.Context) (<-chan Delivery, error)
}

// MemoryConfirmationQueue 以 channel 模擬 MQ，供單機與測試使用
type MemoryConfirmationQueue struct {
	ch chan *model.Booking
}

func NewMemoryConfirmationQueue(bufferSize int) ConfirmationQueue {
	return &MemoryConfirmationQueue{
		ch: make(chan *model.Booking, bufferSize),
	}
}

func (q *MemoryConfirmationQueue) PublishConfirmation(ctx context.Context, booking *model.Booking) error {
	q.ch <- booking
	return nil
}

func (q *MemoryConfirmationQueue) SubscribeConfirmations(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case booking, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: booking,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- booking
						}
					},
				}
			}
		}
	}()

	return out, nil
}
