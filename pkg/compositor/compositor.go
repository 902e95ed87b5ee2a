package compositor

import (
	"image"

	"thirdcoast.systems/camfilter/pkg/presets"
)

// Compose returns a new frame with p applied to src. src is not modified.
// A preset with no adjustments (including the zero Preset returned for an
// unknown id) yields an exact copy of src.
func Compose(src *image.NRGBA, p presets.Preset) *image.NRGBA {
	out := Clone(src)
	Apply(out, p)
	return out
}

// Apply runs the pipeline over f in place.
func Apply(f *image.NRGBA, p presets.Preset) {
	toneFor(p).apply(f)
	if p.Vignette != nil {
		applyVignette(f, *p.Vignette)
	}
	if p.Sharpness != nil {
		applySharpen(f, *p.Sharpness)
	}
}

// ApplyTone runs the tone steps over f in place, in the order given.
func ApplyTone(f *image.NRGBA, steps ...presets.ToneStep) {
	toneChainFor(steps).apply(f)
}

// toneFor builds the tone chain for p. Without explicit steps the order is
// saturate, brightness, contrast, hue-rotate; absent parameters contribute no
// step.
func toneFor(p presets.Preset) toneChain {
	return toneChainFor(p.ToneSteps())
}

func toneChainFor(steps []presets.ToneStep) toneChain {
	c := make(toneChain, 0, len(steps))
	for _, st := range steps {
		switch st.Op {
		case presets.OpSaturate:
			c = append(c, saturateMatrix(st.Value))
		case presets.OpBrightness:
			c = append(c, brightnessMatrix(st.Value))
		case presets.OpContrast:
			c = append(c, contrastMatrix(st.Value))
		case presets.OpHueRotate:
			c = append(c, hueRotateMatrix(st.Value))
		}
	}
	return c
}
