package pdf

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"slimpdf/internal/common"
)

// FirstPageThumbnail renders page 1 of a PDF at the preview scale and
// returns it as a PNG data URL. Documents with zero pages are an error.
func FirstPageThumbnail(data []byte) (string, error) {
	doc, err := Open(data)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	if doc.PageCount() == 0 {
		return "", ErrNoPages
	}

	img, err := doc.RenderPage(0, common.PreviewScale)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return common.EncodeDataURL("image/png", buf.Bytes()), nil
}
