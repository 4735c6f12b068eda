package config

// ThresholdPreset returns the RMS and HFR tables for a named preset.
// If the name is not recognized, the "default" preset is returned.
//
//	preset     rms good/ok   hfr good/ok
//	default    0.5 / 1.0     2.0 / 3.5
//	strict     0.35 / 0.7    1.6 / 2.8
//	relaxed    0.8 / 1.5     2.6 / 4.5
func ThresholdPreset(name string) (rms, hfr Thresholds) {
	rms, hfr = DefaultRMSThresholds(), DefaultHFRThresholds()
	switch name {
	case "strict":
		rms.GoodMax, rms.OkMax = 0.35, 0.7
		hfr.GoodMax, hfr.OkMax = 1.6, 2.8
	case "relaxed":
		rms.GoodMax, rms.OkMax = 0.8, 1.5
		hfr.GoodMax, hfr.OkMax = 2.6, 4.5
	}
	return rms, hfr
}

// PresetNames lists the recognised preset names.
func PresetNames() []string {
	return []string{"default", "strict", "relaxed"}
}

func knownPreset(name string) bool {
	if name == "" {
		return true
	}
	for _, n := range PresetNames() {
		if n == name {
			return true
		}
	}
	return false
}
