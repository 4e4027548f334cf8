package models

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
