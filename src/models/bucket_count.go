package models

type BucketCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}
