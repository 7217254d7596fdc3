package imagehost

import "context"

// Host uploads an image and returns the hosted link.
type Host interface {
	Upload(ctx context.Context, image []byte, name string) (string, error)
}
