package palette

// Sequential single-hue palettes, light to dark (ColorBrewer).
var (
	Blues = []RGB{
		MustParse("rgb(247,251,255)"),
		MustParse("rgb(222,235,247)"),
		MustParse("rgb(198,219,239)"),
		MustParse("rgb(158,202,225)"),
		MustParse("rgb(107,174,214)"),
		MustParse("rgb(66,146,198)"),
		MustParse("rgb(33,113,181)"),
		MustParse("rgb(8,81,156)"),
		MustParse("rgb(8,48,107)"),
	}

	Reds = []RGB{
		MustParse("rgb(255,245,240)"),
		MustParse("rgb(254,224,210)"),
		MustParse("rgb(252,187,161)"),
		MustParse("rgb(252,146,114)"),
		MustParse("rgb(251,106,74)"),
		MustParse("rgb(239,59,44)"),
		MustParse("rgb(203,24,29)"),
		MustParse("rgb(165,15,21)"),
		MustParse("rgb(103,0,13)"),
	}
)

// Named returns a built-in sequential palette by name.
func Named(name string) ([]RGB, bool) {
	switch name {
	case "blues":
		return Blues, true
	case "reds":
		return Reds, true
	}
	return nil, false
}

// Strings formats colors as rgb() values.
func Strings(colors []RGB) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.String()
	}
	return out
}
