package model

import "time"

// Inquiry 聯絡表單紀錄：寫入一次，僅 Admin 可讀
type Inquiry struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Message     string    `json:"message" db:"message"`
	InquiryDate time.Time `json:"inquiry_date" db:"inquiry_date"`
	MemberID    *int      `json:"member_id,omitempty" db:"member_id"`
}

type CreateInquiryRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=300"`
}
