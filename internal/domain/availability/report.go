package availability

// Aggregate drops location reports without slots and keeps the configured order.
func Aggregate(window DateWindow, reports []LocationReport) AggregateReport {
	out := AggregateReport{Window: window}
	for _, r := range reports {
		if len(r.Slots) == 0 {
			continue
		}
		out.Reports = append(out.Reports, r)
	}
	return out
}
