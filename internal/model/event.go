package model

import "time"

type Event struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	VenueID     int       `json:"venue_id" db:"venue_id"`
	CategoryID  int       `json:"category_id" db:"category_id"`
	// PriceCents 單張票價（分）
	PriceCents int64   `json:"price_cents" db:"price_cents"`
	Capacity   int     `json:"capacity" db:"capacity"`
	CreatedBy  *string `json:"created_by,omitempty" db:"created_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// 關聯資料（JOIN 載入，不落地）
	VenueName    string `json:"venue_name,omitempty" db:"-"`
	CategoryName string `json:"category_name,omitempty" db:"-"`
}

// HasConcluded 活動時間是否已過（完整時間精度，供訂票與評論判斷）
func (e *Event) HasConcluded(now time.Time) bool {
	return e.EventDate.Before(now)
}

type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	EventDate   string  `json:"event_date" binding:"required"` // RFC 3339
	VenueID     int     `json:"venue_id" binding:"required"`
	CategoryID  int     `json:"category_id" binding:"required"`
	PriceCents  int64   `json:"price_cents" binding:"min=0"`
	Capacity    int     `json:"capacity" binding:"min=0"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EventDate   *string `json:"event_date,omitempty"`
	VenueID     *int    `json:"venue_id,omitempty"`
	CategoryID  *int    `json:"category_id,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	// UpdatedAt 樂觀併發權杖：必須回傳讀取時的值
	UpdatedAt time.Time `json:"updated_at" binding:"required"`
}

// ListEventsQuery 活動列表的查詢條件，全部可選
type ListEventsQuery struct {
	// Search 比對標題與描述的子字串（不分大小寫）
	Search        string     `form:"search"`
	CategoryID    *int       `form:"category_id"`
	VenueID       *int       `form:"venue_id"`
	DateFrom      *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"date_to" time_format:"2006-01-02"`
	PriceMinCents *int64     `form:"price_min_cents"`
	PriceMaxCents *int64     `form:"price_max_cents"`
}

type UpdateEventParams struct {
	Title       *string
	Description *string
	EventDate   *time.Time
	VenueID     *int
	CategoryID  *int
	PriceCents  *int64
	Capacity    *int
}

// NewEventResponse 組合活動與剩餘座位為回應格式
func NewEventResponse(event *Event, remaining int) *EventResponse {
	return &EventResponse{
		ID:             event.ID,
		Title:          event.Title,
		Description:    event.Description,
		EventDate:      event.EventDate,
		VenueID:        event.VenueID,
		VenueName:      event.VenueName,
		CategoryID:     event.CategoryID,
		CategoryName:   event.CategoryName,
		PriceCents:     event.PriceCents,
		Price:          FormatCents(event.PriceCents),
		Capacity:       event.Capacity,
		RemainingSeats: remaining,
		UpdatedAt:      event.UpdatedAt,
	}
}

// EventResponse 列表與明細共用的回應格式
type EventResponse struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	EventDate      time.Time `json:"event_date"`
	VenueID        int       `json:"venue_id"`
	VenueName      string    `json:"venue_name,omitempty"`
	CategoryID     int       `json:"category_id"`
	CategoryName   string    `json:"category_name,omitempty"`
	PriceCents     int64     `json:"price_cents"`
	Price          string    `json:"price"`
	Capacity       int       `json:"capacity"`
	RemainingSeats int       `json:"remaining_seats"`
	UpdatedAt      time.Time `json:"updated_at"`
}
