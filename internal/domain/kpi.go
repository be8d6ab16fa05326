package domain

import "math"

type KPI struct {
	ID          string
	ProjectID   string
	Name        string
	Target      float64
	Current     float64
	Unit        string
	Description string
	// LowerIsBetter marks counters such as open bugs, where the goal is to
	// stay at or below Target.
	LowerIsBetter bool
	Position      int
}

// Percentage is Current as a share of Target, in percent. A zero target is
// treated as met.
func (k *KPI) Percentage() float64 {
	if k.Target == 0 {
		return 100
	}
	return k.Current / k.Target * 100
}

// Status grades the KPI against its target.
func (k *KPI) Status() KPIStatus {
	if k.LowerIsBetter {
		switch {
		case k.Current == 0:
			return KPIExcellent
		case k.Current <= k.Target:
			return KPIGood
		default:
			return KPIWarning
		}
	}

	pct := k.Percentage()
	switch {
	case pct >= 90:
		return KPIExcellent
	case pct >= 70:
		return KPIGood
	case pct >= 50:
		return KPIWarning
	default:
		return KPICritical
	}
}

// ProgressPercent is the fill of the KPI's progress bar, in [0, 100].
func (k *KPI) ProgressPercent() float64 {
	if k.LowerIsBetter {
		if k.Current <= k.Target {
			return 100
		}
		return math.Max(0, k.Target/k.Current*100)
	}
	return math.Max(0, math.Min(k.Percentage(), 100))
}

// OnTarget is true for excellent and good KPIs.
func (k *KPI) OnTarget() bool {
	s := k.Status()
	return s == KPIExcellent || s == KPIGood
}

// CountOnTarget returns how many of kpis are on target.
func CountOnTarget(kpis []KPI) int {
	n := 0
	for i := range kpis {
		if kpis[i].OnTarget() {
			n++
		}
	}
	return n
}
