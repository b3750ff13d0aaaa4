package timeline

import (
	"sort"
	"time"
)

// AssignLanes packs tasks into the fewest lanes so that tasks sharing a lane
// never share a day. Tasks are processed by start date (stable, so equal
// starts keep their input order) and each goes into the first lane whose last
// task ended strictly before it starts. The result is a sorted copy with Lane
// set on every task.
func AssignLanes(tasks []GanttTask) []GanttTask {
	if len(tasks) == 0 {
		return nil
	}
	out := append([]GanttTask(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return DiffDays(out[i].Start, out[j].Start) > 0
	})

	var laneEnds []time.Time
	for i := range out {
		lane := -1
		for l, end := range laneEnds {
			if DiffDays(end, out[i].Start) > 0 {
				lane = l
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, out[i].End)
		} else {
			laneEnds[lane] = out[i].End
		}
		out[i].Lane = lane
	}
	return out
}

// LaneCount is max(lane)+1, or 1 for no tasks.
func LaneCount(tasks []GanttTask) int {
	count := 1
	for _, t := range tasks {
		if t.Lane+1 > count {
			count = t.Lane + 1
		}
	}
	return count
}

// Overlaps reports whether two tasks share at least one calendar day.
func Overlaps(a, b GanttTask) bool {
	return DiffDays(a.Start, b.End) >= 0 && DiffDays(b.Start, a.End) >= 0
}
