//go:build !nogpu

package uniform

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shade"
)

// ErrNothingStaged is returned by Upload for an empty Buffer.
var ErrNothingStaged = errors.New("uniform: nothing staged")

// minUploadSize is the smallest GPU buffer an Uploader allocates.
const minUploadSize = 4 * DefaultAlignment

// Uploader copies a frame's staged blocks into one GPU uniform buffer.
// The GPU buffer is reused across frames and replaced only when a frame
// needs more room.
type Uploader struct {
	device hal.Device
	queue  hal.Queue
	buf    hal.Buffer
	size   uint64
}

// NewUploader creates an Uploader. No GPU memory is allocated until the
// first Upload.
func NewUploader(device hal.Device, queue hal.Queue) *Uploader {
	return &Uploader{device: device, queue: queue}
}

// Upload writes the staged bytes of b at offset 0 and returns the GPU
// buffer. Ranges returned by b.Push and b.PushDraw are valid dynamic
// offsets into it.
func (u *Uploader) Upload(b *Buffer) (hal.Buffer, error) {
	data := b.Bytes()
	if len(data) == 0 {
		return nil, ErrNothingStaged
	}
	if err := u.ensure(uint64(len(data))); err != nil {
		return nil, err
	}
	u.queue.WriteBuffer(u.buf, 0, data)
	return u.buf, nil
}

func (u *Uploader) ensure(need uint64) error {
	if u.buf != nil && need <= u.size {
		return nil
	}
	size := max(u.size*2, minUploadSize)
	for size < need {
		size *= 2
	}
	buf, err := u.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shade_uniforms",
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("uniform: create buffer of %d bytes: %w", size, err)
	}
	if u.buf != nil {
		u.device.DestroyBuffer(u.buf)
	}
	shade.Logger().Debug("uniform buffer grown", "from", u.size, "to", size)
	u.buf, u.size = buf, size
	return nil
}

// Size returns the capacity of the GPU buffer, or 0 before the first Upload.
func (u *Uploader) Size() uint64 {
	return u.size
}

// Destroy releases the GPU buffer. It is safe to call more than once.
func (u *Uploader) Destroy() {
	if u.buf != nil {
		u.device.DestroyBuffer(u.buf)
		u.buf = nil
	}
	u.size = 0
}
