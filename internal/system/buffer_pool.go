package system

import (
	"bytes"
	"sync"
)

// Buffers that grew past maxPooledBuffer are dropped instead of pooled.
const maxPooledBuffer = 8 << 20

// bufferPool переиспользует буферы чтения документов
// для снижения нагрузки на Garbage Collector (GC).
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// GetBuffer возвращает пустой буфер из пула.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer возвращает буфер в пул для повторного использования.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}
