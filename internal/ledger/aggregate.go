package ledger

// Record is one valued row of a snapshot: the value function (market valuation
// for assets, outstanding balance for liabilities) is applied when the snapshot
// is loaded, so aggregation itself is pure arithmetic.
type Record struct {
	Ownership Ownership
	Value     float64
}

// TotalValue sums Value weighted by the resolved ownership share for the
// viewing entity. Addition is commutative, so the result is independent of
// record order and of whether records are filtered into a view first.
func TotalValue(records []Record, viewing string) float64 {
	var total float64
	for _, r := range records {
		total += r.Value * ResolveShare(r.Ownership, viewing)
	}
	return total
}

// ViewEntry is one row of a materialized per-entity view, cached for display.
type ViewEntry struct {
	Record Record
	Share  float64
}

// MaterializeView returns the records visible to the viewing entity (share > 0)
// with their resolved shares. ViewTotal over the result equals TotalValue over
// the full record set.
func MaterializeView(records []Record, viewing string) []ViewEntry {
	var view []ViewEntry
	for _, r := range records {
		if share := ResolveShare(r.Ownership, viewing); share > 0 {
			view = append(view, ViewEntry{Record: r, Share: share})
		}
	}
	return view
}

// ViewTotal sums a materialized view. Entries with negative shares never make
// it into a view, so a split with negative percentages can make ViewTotal
// diverge from TotalValue; callers wanting exact totals use TotalValue.
func ViewTotal(view []ViewEntry) float64 {
	var total float64
	for _, e := range view {
		total += e.Record.Value * e.Share
	}
	return total
}

// NetWorth is the asset total minus the liability total for a viewing entity.
func NetWorth(assets, liabilities []Record, viewing string) float64 {
	return TotalValue(assets, viewing) - TotalValue(liabilities, viewing)
}
