package model

// Role 類型：請求進入時解析一次，之後以型別傳遞，不再查字串
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleOrganizer Role = "Organizer"
	RoleMember    Role = "Member"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleMember:
		return true
	}
	return false
}

// CanManageEvents 是否可建立與編輯活動
func (r Role) CanManageEvents() bool {
	return r == RoleAdmin || r == RoleOrganizer
}

// CanVerifyTickets 是否可在入場時驗票
func (r Role) CanVerifyTickets() bool {
	return r == RoleAdmin || r == RoleOrganizer
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
