package model

import "time"

// TicketStatus 驗票顯示狀態：由訂票與活動日期推導，不落地
type TicketStatus string

const (
	TicketStatusInvalid TicketStatus = "Invalid"
	TicketStatusExpired TicketStatus = "Expired"
	TicketStatusPending TicketStatus = "Pending"
	TicketStatusValid   TicketStatus = "Valid"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusInvalid, TicketStatusExpired, TicketStatusPending, TicketStatusValid:
		return true
	}
	return false
}

// DeriveTicketStatus 純函式推導驗票狀態。
// 過期以「日」為精度判斷，且優先於 verified 旗標：活動結束後即使已驗證也視為 Expired。
func DeriveTicketStatus(booking *Booking, eventDate time.Time, now time.Time) TicketStatus {
	if booking == nil {
		return TicketStatusInvalid
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if eventDate.Before(today) {
		return TicketStatusExpired
	}
	if !booking.Verified {
		return TicketStatusPending
	}
	return TicketStatusValid
}
