package model

import "time"

// Member 會員檔案：與外部身分提供者的 principal 一對一連結
type Member struct {
	ID          int       `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Preferences *string   `json:"preferences,omitempty" db:"preferences"`
	UserID      *string   `json:"user_id,omitempty" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateMemberParams struct {
	FullName    *string
	Email       *string
	Phone       *string
	Preferences *string
}

type CreateMemberRequest struct {
	FullName    string  `json:"full_name" binding:"required,max=100"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone" binding:"required,max=20"`
	Preferences *string `json:"preferences,omitempty"`
}

type UpdateMemberRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone       *string `json:"phone,omitempty"`
	Preferences *string `json:"preferences,omitempty"`
}

// Principal 由認證中介層自 JWT 解析出的呼叫者
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}
