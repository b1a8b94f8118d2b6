package buffer

// PooledBuffer is a reusable byte buffer.
type PooledBuffer interface {
	Data() []byte

	Len() int
	Cap() int

	// Release returns the buffer to the pool. The buffer must not be used afterwards.
	Release()

	Resize(int)
}
