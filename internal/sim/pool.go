package sim

import (
	"sync"

	"github.com/san-kum/conserve/internal/dynamo"
)

// PointPool recycles the point buffers behind each frame's series so a
// redraw at the display rate does not allocate.
type PointPool struct {
	pool sync.Pool
	size int
}

func NewPointPool(size int) *PointPool {
	return &PointPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]dynamo.Point, 0, size)
			},
		},
	}
}

// Get returns an empty buffer with room for at least size points.
func (p *PointPool) Get() []dynamo.Point {
	return p.pool.Get().([]dynamo.Point)[:0]
}

func (p *PointPool) Put(pts []dynamo.Point) {
	if cap(pts) >= p.size {
		p.pool.Put(pts[:0])
	}
}

// Release returns all of a frame's buffers. The frame must not be used
// afterwards.
func (p *PointPool) Release(f Frame) {
	for _, s := range f.Series() {
		if s.Points != nil {
			p.Put(s.Points)
		}
	}
}
