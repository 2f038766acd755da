package statistic

import (
	"sort"
	"strconv"

	production "lgb-dashboard/internal/production/domain"
)

// HeatTreatmentProcess is the process whose records are listed as heat-treatment cycles.
const HeatTreatmentProcess = "Heat Treatment"

const (
	downtimeTopLimit   = 4
	workOrderLimit     = 5
	heatTreatmentLimit = 4

	workOrderBase     = 10200
	heatTreatmentBase = 218
)

// Bar is one labelled value of a bar list.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Groupings are the per-machine and per-process summaries of a record set.
type Groupings struct {
	Utilization    []Bar `json:"utilization"`
	DowntimeTop    []Bar `json:"downtime_top"`
	ScrapByProcess []Bar `json:"scrap_by_process"`
	WorkOrders     []Bar `json:"work_orders"`
	HeatTreatment  []Bar `json:"heat_treatment"`
}

// BuildGroupings computes every grouping.
func BuildGroupings(records []production.Record) Groupings {
	return Groupings{
		Utilization:    Utilization(records),
		DowntimeTop:    DowntimeTop(records),
		ScrapByProcess: ScrapByProcess(records),
		WorkOrders:     WorkOrders(records),
		HeatTreatment:  HeatTreatmentCycles(records),
	}
}

// Utilization is the mean OEE per machine rounded to an integer, highest first.
func Utilization(records []production.Record) []Bar {
	byMachine := newOrderedMap[runningMean]()
	for _, record := range records {
		byMachine.update(record.Machine, func(m *runningMean) { m.add(record.OEE) })
	}
	bars := make([]Bar, 0, byMachine.len())
	byMachine.each(func(machine string, m runningMean) {
		bars = append(bars, Bar{Label: machine, Value: RoundHalfUp(m.mean(), 0)})
	})
	sortDescending(bars)
	return bars
}

// DowntimeTop is the summed downtime per machine, highest first, at most four machines.
func DowntimeTop(records []production.Record) []Bar {
	byMachine := newOrderedMap[float64]()
	for _, record := range records {
		byMachine.update(record.Machine, func(total *float64) { *total += record.Downtime })
	}
	bars := make([]Bar, 0, byMachine.len())
	byMachine.each(func(machine string, total float64) {
		bars = append(bars, Bar{Label: machine, Value: roundFixed(total, 1)})
	})
	sortDescending(bars)
	return truncate(bars, downtimeTopLimit)
}

// ScrapByProcess is the mean scrap per process, highest first.
func ScrapByProcess(records []production.Record) []Bar {
	byProcess := newOrderedMap[runningMean]()
	for _, record := range records {
		byProcess.update(record.Process, func(m *runningMean) { m.add(record.Scrap) })
	}
	bars := make([]Bar, 0, byProcess.len())
	byProcess.each(func(process string, m runningMean) {
		bars = append(bars, Bar{Label: process, Value: roundFixed(m.mean(), 1)})
	})
	sortDescending(bars)
	return bars
}

// WorkOrders lists summed throughput per machine in hundreds under sequential
// work-order labels. Order is machine first-seen order, not value.
func WorkOrders(records []production.Record) []Bar {
	byMachine := newOrderedMap[float64]()
	for _, record := range records {
		byMachine.update(record.Machine, func(total *float64) { *total += record.Throughput })
	}
	bars := make([]Bar, 0, byMachine.len())
	idx := 0
	byMachine.each(func(_ string, total float64) {
		bars = append(bars, Bar{
			Label: "WO-" + strconv.Itoa(workOrderBase+idx),
			Value: RoundHalfUp(total/100, 0),
		})
		idx++
	})
	return truncate(bars, workOrderLimit)
}

// HeatTreatmentCycles lists the first four heat-treatment records by date with
// cycle time derived from downtime.
func HeatTreatmentCycles(records []production.Record) []Bar {
	bars := make([]Bar, 0, heatTreatmentLimit)
	for _, record := range production.SortByDate(records) {
		if record.Process != HeatTreatmentProcess {
			continue
		}
		bars = append(bars, Bar{
			Label: "HT-" + strconv.Itoa(heatTreatmentBase+len(bars)),
			Value: roundFixed(record.Downtime/3, 1),
		})
		if len(bars) == heatTreatmentLimit {
			break
		}
	}
	return bars
}

func sortDescending(bars []Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Value > bars[j].Value
	})
}

func truncate(bars []Bar, limit int) []Bar {
	if len(bars) > limit {
		return bars[:limit]
	}
	return bars
}
