package utils

import "fmt"

// basePalette holds hand-picked colors that read well on a seat map.
// Subjects beyond the palette get generated hues.
var basePalette = []string{
	"#4E79A7", // blue
	"#F28E2B", // orange
	"#59A14F", // green
	"#E15759", // red
	"#B07AA1", // purple
	"#76B7B2", // teal
	"#EDC948", // yellow
	"#FF9DA7", // pink
	"#9C755F", // brown
	"#BAB0AC", // grey
}

// SubjectColors maps each subject to a hex color.  The assignment is
// deterministic: subjects are colored in the order given, so the same
// subject list always produces the same legend.  Past the base palette,
// hues are spaced by the golden angle to stay distinguishable.
func SubjectColors(subjects []string) map[string]string {
	out := make(map[string]string, len(subjects))
	for i, s := range subjects {
		if _, ok := out[s]; ok {
			continue
		}
		if i < len(basePalette) {
			out[s] = basePalette[i]
			continue
		}
		hue := float64((i-len(basePalette))*137) // golden-angle steps, degrees
		for hue >= 360 {
			hue -= 360
		}
		r, g, b := hsvToRGB(hue, 0.55, 0.85)
		out[s] = fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return out
}

// hsvToRGB converts h in [0,360), s and v in [0,1] to 8-bit RGB.
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	hp := h / 60
	x := c * (1 - abs(mod2(hp)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// mod2 reduces f into [0,2) without importing math for a single Mod call.
func mod2(f float64) float64 {
	for f >= 2 {
		f -= 2
	}
	for f < 0 {
		f += 2
	}
	return f
}
