// Package blob stores uploaded document images and hands back durable URLs.
package blob

import (
	"context"
	"io"
)

// ContentTypeJPEG is the only content type this flow uploads.
const ContentTypeJPEG = "image/jpeg"

// Store persists document images. Upload returns the URL under which the
// object is retrievable.
type Store interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}
