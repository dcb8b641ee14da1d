package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/polyfan/internal/fan"
	"github.com/irfansharif/polyfan/internal/geom"
)

// fakeUploader records appended vertex data in memory.
type fakeUploader struct {
	data    []float32
	appends int
	err     error
}

func (f *fakeUploader) Uploaded() int { return len(f.data) / fan.FloatsPerVertex }

func (f *fakeUploader) Append(vertices []float32) error {
	if f.err != nil {
		return f.err
	}
	f.appends++
	f.data = append(f.data, vertices...)
	return nil
}

func (f *fakeUploader) Draw() error { return nil }

func newBuffer() (*fan.Triangulator, *fan.Buffer) {
	buf := &fan.Buffer{}
	return fan.NewTriangulator(800, 600, mgl32.Vec3{1, 0.5, 0}, buf), buf
}

func TestSyncBuffer_UploadsOnlyNewVertices(t *testing.T) {
	tri, buf := newBuffer()
	up := &fakeUploader{}

	require.NoError(t, syncBuffer(up, buf))
	assert.Equal(t, 0, up.appends)

	tri.Triangulate([]geom.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 30, Y: 40}})
	require.NoError(t, syncBuffer(up, buf))
	assert.Equal(t, 9, up.Uploaded())
	assert.Equal(t, 1, up.appends)

	// Nothing new, nothing sent.
	require.NoError(t, syncBuffer(up, buf))
	assert.Equal(t, 1, up.appends)

	tri.Triangulate([]geom.Point{{X: 100, Y: 100}, {X: 150, Y: 100}, {X: 130, Y: 140}})
	require.NoError(t, syncBuffer(up, buf))
	assert.Equal(t, 18, up.Uploaded())
	assert.Equal(t, 2, up.appends)
	assert.Equal(t, buf.Floats(0), up.data)
}

func TestSyncBuffer_GPUAheadOfBuffer(t *testing.T) {
	_, buf := newBuffer()
	up := &fakeUploader{data: make([]float32, 3*fan.FloatsPerVertex)}
	assert.Error(t, syncBuffer(up, buf))
}

func TestSyncBuffer_WrapsUploadError(t *testing.T) {
	tri, buf := newBuffer()
	tri.Triangulate([]geom.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 30, Y: 40}})
	boom := errors.New("boom")
	err := syncBuffer(&fakeUploader{err: boom}, buf)
	assert.ErrorIs(t, err, boom)
}
