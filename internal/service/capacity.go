package service

// 容量帳本：不維護計數器，每次決策由權威的訂票列總和重算

// Remaining 剩餘座位 = 容量 − 已訂總數
func Remaining(capacity, booked int) int {
	return capacity - booked
}

// CanBook 是否可接受本次訂票：必須尚有座位，且請求數量不超過剩餘
func CanBook(remaining, requested int) bool {
	return remaining > 0 && requested <= remaining
}
