package digest

import "encoding/base64"

// placeholderGIFBase64 is a 1x1 transparent GIF. It stands in for any artwork
// that fails to download so a broken thumbnail never blocks a send.
const placeholderGIFBase64 = "R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

// PlaceholderGIFType is the content type of the placeholder payload.
const PlaceholderGIFType = "image/gif"

// PlaceholderGIF is the placeholder image payload.
var PlaceholderGIF = mustDecodeGIF()

func mustDecodeGIF() []byte {
	data, err := base64.StdEncoding.DecodeString(placeholderGIFBase64)
	if err != nil {
		panic(err)
	}
	return data
}

// Placeholder returns the placeholder as an Image value.
func Placeholder() Image {
	return Image{Data: PlaceholderGIF, ContentType: PlaceholderGIFType}
}
