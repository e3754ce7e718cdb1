package model

import "time"

// MaxReviewCommentLen 評論長度上限
const MaxReviewCommentLen = 300

type Review struct {
	ID         int       `json:"id" db:"id"`
	Comment    string    `json:"comment" db:"comment"`
	Rating     int       `json:"rating" db:"rating"`
	ReviewDate time.Time `json:"review_date" db:"review_date"`
	MemberID   int       `json:"member_id" db:"member_id"`
	EventID    int       `json:"event_id" db:"event_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	MemberName string `json:"member_name,omitempty" db:"-"`
	EventTitle string `json:"event_title,omitempty" db:"-"`
}

type CreateReviewRequest struct {
	EventID int    `json:"event_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=300"`
}
