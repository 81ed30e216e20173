package focus

// CycleWindowIndex calculates the next window index when cycling through windows.
// Wraps around at boundaries.
func CycleWindowIndex(current, total int, forward bool) int {
	if total <= 0 {
		return 0
	}

	if forward {
		return (current + 1) % total
	}

	// Backward - handle wrap-around
	return (current - 1 + total) % total
}

// RotationQueue returns the items visited after current, in cycling order,
// without current itself. Forward walks the list from current+1 and wraps;
// backward walks from current-1 and wraps. When current is not in the
// list every item is returned, in list order or reversed.
func RotationQueue(items []string, current string, forward bool) []string {
	n := len(items)
	start := -1
	for i, item := range items {
		if item == current {
			start = i
			break
		}
	}

	queue := make([]string, 0, n)
	if start < 0 {
		for i := 0; i < n; i++ {
			if forward {
				queue = append(queue, items[i])
			} else {
				queue = append(queue, items[n-1-i])
			}
		}
		return queue
	}

	idx := start
	for i := 1; i < n; i++ {
		idx = CycleWindowIndex(idx, n, forward)
		queue = append(queue, items[idx])
	}
	return queue
}
