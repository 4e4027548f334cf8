package analytics

import "salesboard-server/src/models"

var priceBuckets = []struct {
	label string
	upper float64
}{
	{"0-100", 100},
	{"101-200", 200},
	{"201-300", 300},
	{"301-400", 400},
	{"401-500", 500},
	{"501-600", 600},
	{"601-700", 700},
	{"701-800", 800},
	{"801-900", 900},
}

const topBucketLabel = "901-above"

// ComputeStatistics reduces a month of records to the sold/unsold summary.
// Only sold records contribute to the sale amount.
func ComputeStatistics(txs []models.Transaction) models.Statistics {
	var stats models.Statistics
	for _, t := range txs {
		if t.Sold {
			stats.TotalSaleAmount += t.Price
			stats.TotalSoldItems++
		} else {
			stats.TotalNotSoldItems++
		}
	}
	return stats
}

// BuildBarChart counts records per fixed price band. Every band is present
// in ascending order, zero counts included. A record lands in the first band
// whose upper bound covers its price, so fractional prices between bands
// roll up rather than down.
func BuildBarChart(txs []models.Transaction) []models.BucketCount {
	rows := make([]models.BucketCount, 0, len(priceBuckets)+1)
	for _, b := range priceBuckets {
		rows = append(rows, models.BucketCount{Range: b.label})
	}
	rows = append(rows, models.BucketCount{Range: topBucketLabel})

	for _, t := range txs {
		rows[bucketIndex(t.Price)].Count++
	}
	return rows
}

func bucketIndex(price float64) int {
	for i, b := range priceBuckets {
		if price <= b.upper {
			return i
		}
	}
	return len(priceBuckets)
}

// BuildPieChart counts records per category, ordered by first appearance.
// Categories with no records in the input are absent.
func BuildPieChart(txs []models.Transaction) []models.CategoryCount {
	index := make(map[string]int)
	rows := []models.CategoryCount{}
	for _, t := range txs {
		i, ok := index[t.Category]
		if !ok {
			i = len(rows)
			index[t.Category] = i
			rows = append(rows, models.CategoryCount{Category: t.Category})
		}
		rows[i].Count++
	}
	return rows
}
