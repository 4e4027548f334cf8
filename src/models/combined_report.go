package models

type CombinedReport struct {
	Statistics Statistics      `json:"statistics"`
	BarChart   []BucketCount   `json:"barChart"`
	PieChart   []CategoryCount `json:"pieChart"`
}
