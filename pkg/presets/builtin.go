package presets

// Built-in preset ids.
const (
	AquaSky           = "aqua_sky"
	SunsetNature      = "sunset_nature"
	SuperNight        = "super_night"
	SkyBlue           = "sky_blue"
	MacroLens         = "macro_lens"
	BlackStyle        = "black_style"
	RedApple          = "red_apple"
	PixelColor        = "pixel_color"
	HDColor           = "hd_color"
	GreenPark         = "green_park"
	BeautySelfie      = "beauty_selfie"
	Selfie            = "selfie"
	MoonlitNight      = "moonlit_night"
	DSLRMax           = "dslr_max"
	DSLRMax2          = "dslr_max_2"
	ContrastDefault   = "contrast_default"
	SaturationDefault = "saturation_default"
)

// Enhance is the one-shot adjustment applied by the enhance action:
// contrast 1.1, then brightness 1.05.
var Enhance = Preset{
	ID:    "enhance",
	Title: "ENHANCE",
	Steps: []ToneStep{
		{Op: OpContrast, Value: 1.1},
		{Op: OpBrightness, Value: 1.05},
	},
}

var builtin = MustNew(
	Preset{ID: AquaSky, Title: "🪂AQUA SKY", Saturation: F(2.5), Vignette: F(0.375)},
	Preset{ID: SunsetNature, Title: "🔥SUNSET & NATURE", Saturation: F(2.0), Contrast: F(1.5)},
	Preset{ID: SuperNight, Title: "🌃SUPER NIGHT", Brightness: F(0.8), Contrast: F(1.2)},
	Preset{ID: SkyBlue, Title: "⛱️SKY BLUE", Saturation: F(2.5)},
	Preset{ID: MacroLens, Title: "🔬MACRO LENS", Sharpness: F(2.0), Saturation: F(2.0)},
	Preset{ID: BlackStyle, Title: "🧤BLACK STYLE", Contrast: F(1.375), Saturation: F(0.0)},
	Preset{ID: RedApple, Title: "🍎RED APPLE", HueRotate: F(90), Saturation: F(1.5)},
	Preset{ID: PixelColor, Title: "💥PIXEL COLOR", Saturation: F(1.625), Contrast: F(1.125)},
	Preset{ID: HDColor, Title: "🌶️HD COLOR", Saturation: F(3.0), Contrast: F(1.25)},
	Preset{ID: GreenPark, Title: "🌴GREEN PARK", Saturation: F(1.625)},
	Preset{ID: BeautySelfie, Title: "🤳BEAUTY SELFIE", Saturation: F(2.0)},
	Preset{ID: Selfie, Title: "🤳SELFIE", Saturation: F(1.375)},
	Preset{ID: MoonlitNight, Title: "🌙MOONLIT NIGHT", Brightness: F(0.375), Contrast: F(1.5)},
	Preset{ID: DSLRMax, Title: "📸DSLR MAX", Saturation: F(2.125)},
	Preset{ID: DSLRMax2, Title: "👫DSLR MAX", Saturation: F(2.25)},
	Preset{ID: ContrastDefault, Title: "DEFAULT CONTRAST", Contrast: F(1.0)},
	Preset{ID: SaturationDefault, Title: "DEFAULT SATURATION", Saturation: F(1.0)},
)

// Default returns the built-in registry. It is shared and read-only.
func Default() *Registry {
	return builtin
}
