package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking 訂票紀錄：建立後除 Verified 外不可變更
type Booking struct {
	ID int `json:"id" db:"id"`
	// TicketCode 隨機產生的公開查驗碼；序號 ID 僅供內部與舊裝置使用
	TicketCode      uuid.UUID `json:"ticket_code" db:"ticket_code"`
	BookingDate     time.Time `json:"booking_date" db:"booking_date"`
	Quantity        int       `json:"quantity" db:"quantity"`
	TotalPriceCents int64     `json:"total_price_cents" db:"total_price_cents"`
	Verified        bool      `json:"verified" db:"verified"`
	MemberID        int       `json:"member_id" db:"member_id"`
	EventID         int       `json:"event_id" db:"event_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Event  *Event  `json:"event,omitempty" db:"-"`
	Member *Member `json:"member,omitempty" db:"-"`
}

type CreateBookingRequest struct {
	EventID  int `json:"event_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type VerifyBookingRequest struct {
	BookingID int `json:"booking_id" binding:"required"`
}

// NewBookingResponse 組合訂票與關聯活動為回應格式
func NewBookingResponse(booking *Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              booking.ID,
		TicketCode:      booking.TicketCode.String(),
		BookingDate:     booking.BookingDate,
		Quantity:        booking.Quantity,
		TotalPriceCents: booking.TotalPriceCents,
		TotalPrice:      FormatCents(booking.TotalPriceCents),
		Verified:        booking.Verified,
		MemberID:        booking.MemberID,
		EventID:         booking.EventID,
	}
	if booking.Event != nil {
		resp.EventTitle = booking.Event.Title
		resp.EventDate = booking.Event.EventDate
		resp.VenueName = booking.Event.VenueName
	}
	return resp
}

type BookingResponse struct {
	ID              int       `json:"id"`
	TicketCode      string    `json:"ticket_code"`
	BookingDate     time.Time `json:"booking_date"`
	Quantity        int       `json:"quantity"`
	TotalPriceCents int64     `json:"total_price_cents"`
	TotalPrice      string    `json:"total_price"`
	Verified        bool      `json:"verified"`
	MemberID        int       `json:"member_id"`
	EventID         int       `json:"event_id"`
	EventTitle      string    `json:"event_title,omitempty"`
	EventDate       time.Time `json:"event_date,omitempty"`
	VenueName       string    `json:"venue_name,omitempty"`
}
