package graph

import "fmt"

// AxisLabels are the five Y tick labels from top to bottom.
type AxisLabels [5]string

// Labels formats the tick labels for r. RMS labels carry an arc-second mark
// and an explicit sign on the upper half; HFR labels are plain numbers with a
// literal "0" at the bottom.
func Labels(r Range, k Kind) AxisLabels {
	top := float64(r.Max) / 100
	if k == KindHFR {
		return AxisLabels{
			fmt.Sprintf("%.1f", top),
			fmt.Sprintf("%.1f", top*0.75),
			fmt.Sprintf("%.1f", top*0.5),
			fmt.Sprintf("%.1f", top*0.25),
			"0",
		}
	}
	bottom := float64(r.Min) / 100
	return AxisLabels{
		fmt.Sprintf("+%.1f\"", top),
		fmt.Sprintf("+%.1f\"", top/2),
		`0"`,
		fmt.Sprintf("%.1f\"", -top/2),
		fmt.Sprintf("%.1f\"", bottom),
	}
}
