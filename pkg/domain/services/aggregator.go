package services

import (
	"sort"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

type vendorTally struct {
	records int
	sum     int
	late    int
	blank   int
}

// Aggregate computes one VendorSummary per vendor in the view, sorted by
// risk score descending. Vendors with equal scores keep first-seen order.
func Aggregate(view *entities.FilteredView) []entities.VendorSummary {
	summaries := []entities.VendorSummary{}
	if view == nil || view.Empty() {
		return summaries
	}

	var order []entities.VendorID
	tallies := make(map[entities.VendorID]*vendorTally)

	view.Each(func(r entities.DeliveryRecord) {
		t, ok := tallies[r.VendorID]
		if !ok {
			t = &vendorTally{}
			tallies[r.VendorID] = t
			order = append(order, r.VendorID)
		}
		t.records++
		t.sum += r.DelayDays
		if r.IsLate() {
			t.late++
		}
		if r.HasBlankReason() {
			t.blank++
		}
	})

	for _, vendor := range order {
		t := tallies[vendor]
		n := float64(t.records)
		avg := float64(t.sum) / n
		late := float64(t.late) / n

		summaries = append(summaries, entities.VendorSummary{
			VendorID:       vendor,
			Records:        t.records,
			AvgDelay:       avg,
			LatePct:        late,
			BlankReasonPct: float64(t.blank) / n,
			RiskScore:      entities.RiskScoreOf(avg, late),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].RiskScore > summaries[j].RiskScore
	})

	return summaries
}
