package surface

import "fmt"

// NanoKONTROL2 is the name of the Korg nanoKONTROL2 profile.
const NanoKONTROL2 = "nanoKONTROL2"

// nanoKONTROL2Controls is the factory-default scene of the Korg nanoKONTROL2.
func nanoKONTROL2Controls() map[string]Control {
	controls := map[string]Control{
		"rewind":      button(43),
		"fwd":         button(44),
		"stop":        button(42),
		"play":        button(41),
		"rec":         button(45),
		"cycle":       button(46),
		"marker_set":  button(60),
		"marker_prev": button(61),
		"marker_next": button(62),
		"track_prev":  button(58),
		"track_next":  button(59),
	}
	bank(controls, "S", 32, button)
	bank(controls, "M", 48, button)
	bank(controls, "R", 64, button)
	bank(controls, "sl", 0, slider)
	bank(controls, "kn", 16, knob)
	return controls
}

// bank adds one control per channel strip, named prefix0 to prefix7.
func bank(controls map[string]Control, prefix string, first int, mk func(int) Control) {
	for i := 0; i < 8; i++ {
		controls[fmt.Sprintf("%s%d", prefix, i)] = mk(first + i)
	}
}

// Builtin returns the catalog of profiles compiled into korgi.
func Builtin() *Catalog {
	c, err := NewCatalog(mustProfile(NanoKONTROL2, nanoKONTROL2Controls()))
	if err != nil {
		panic(err)
	}
	return c
}
