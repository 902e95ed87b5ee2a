package live

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_PresentAndEncode(t *testing.T) {
	s := NewSurface()
	var buf bytes.Buffer
	ok, err := s.EncodePNG(&buf)
	require.NoError(t, err)
	require.False(t, ok)
	assert.Zero(t, s.Size())

	f := solid(4, 3, color.NRGBA{10, 20, 30, 255})
	s.Present(f)
	got, seq := s.Frame()
	assert.Same(t, f, got)
	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, 4, s.Size().X)
	assert.False(t, s.PresentedAt().IsZero())

	ok, err = s.EncodePNG(&buf)
	require.NoError(t, err)
	require.True(t, ok)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, a := img.At(2, 1).RGBA()
	assert.Equal(t, []uint32{10, 20, 30, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
}

func TestSurface_CaptureAndSaveIdentical(t *testing.T) {
	s := NewSurface()
	s.Present(solid(5, 5, color.NRGBA{90, 140, 200, 255}))

	var a, b bytes.Buffer
	_, err := s.EncodePNG(&a)
	require.NoError(t, err)
	_, err = s.EncodePNG(&b)
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestHub_SubscribeAndPublish(t *testing.T) {
	h := NewHub()
	assert.Equal(t, StateStarting, h.Status().State)

	ch, unsubscribe := h.Subscribe()
	h.PublishStatus(Status{State: StateFailed, Reason: ReasonNoDevice})
	h.PublishParams(DefaultParams("selfie"))

	evt := <-ch
	assert.Equal(t, EventStatus, evt.Typ)
	assert.Equal(t, ReasonNoDevice, evt.Status.Reason)
	evt = <-ch
	assert.Equal(t, EventParams, evt.Typ)
	assert.Equal(t, "selfie", evt.Params.PresetID)
	assert.Equal(t, StateFailed, h.Status().State)

	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
	unsubscribe()

	// Publishing with no subscribers and a full buffer never blocks.
	ch2, unsub2 := h.Subscribe()
	defer unsub2()
	for i := 0; i < 100; i++ {
		h.PublishStatus(Status{State: StateReady})
	}
	assert.Len(t, ch2, cap(ch2))
}

func TestAcquisitionError(t *testing.T) {
	base := assert.AnError
	ae := AsAcquisitionError(base)
	assert.Equal(t, ReasonUnknown, ae.Reason)
	assert.ErrorIs(t, ae, base)

	wrapped := &AcquisitionError{Reason: ReasonNoDevice, Err: base}
	assert.Same(t, wrapped, AsAcquisitionError(wrapped))
	assert.Contains(t, wrapped.Error(), "no_device")
	assert.Contains(t, (&AcquisitionError{Reason: ReasonUnknown}).Error(), "unknown")
}
