package models

type Statistics struct {
	TotalSaleAmount   float64 `json:"totalSaleAmount"`
	TotalSoldItems    int     `json:"totalSoldItems"`
	TotalNotSoldItems int     `json:"totalNotSoldItems"`
}
