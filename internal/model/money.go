package model

import "fmt"

// 金額一律以「分」(int64) 儲存與計算，避免浮點誤差
const (
	// MaxUnitPriceCents 單價上限 10000.00
	MaxUnitPriceCents int64 = 1_000_000
	// MaxTotalPriceCents 訂單總價上限 100000.00
	MaxTotalPriceCents int64 = 10_000_000
)

// FormatCents 將分轉為 "75.00" 形式的字串（僅供顯示）
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
