package report

import (
	"bytes"
	"log"

	"github.com/disintegration/imaging"

	"coolcare/storage"
)

// ImageTranscoder optionally re-encodes fetched image bytes to control
// output file size. A failing transcode never fails rendering; the
// original bytes are embedded unmodified.
type ImageTranscoder interface {
	Transcode(data []byte) (out []byte, imageType string, err error)
}

// NopTranscoder passes bytes through unchanged.
type NopTranscoder struct{}

func (NopTranscoder) Transcode(data []byte) ([]byte, string, error) {
	return data, DetectImageType(data), nil
}

// BoundedTranscoder proportionally downscales images into a bounding
// box and re-encodes them as JPEG.
type BoundedTranscoder struct {
	MaxWidth  int
	MaxHeight int
}

func (t BoundedTranscoder) Transcode(data []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	w, h := t.MaxWidth, t.MaxHeight
	if w <= 0 {
		w = 900
	}
	if h <= 0 {
		h = 900
	}

	img = imaging.Fit(img, w, h, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "JPG", nil
}

// Asset holds fetched (and possibly transcoded) image bytes ready for
// embedding.
type Asset struct {
	Data []byte
	Type string
}

// AssetTable maps an image URL to its prepared asset. Fetch failures
// leave no entry; the layout phase skips misses.
type AssetTable map[string]Asset

// PrepareAssets fetches every image referenced by the rows, one at a
// time in input order. A failed fetch is logged and skipped, never
// fatal to the document. A failed transcode falls back to the original
// bytes.
func PrepareAssets(fetcher storage.Fetcher, transcoder ImageTranscoder, rows []Row) AssetTable {
	if transcoder == nil {
		transcoder = NopTranscoder{}
	}

	table := AssetTable{}
	for _, row := range rows {
		for _, url := range row.ImageURLs {
			if _, ok := table[url]; ok {
				continue
			}
			data, err := fetcher.Fetch(url)
			if err != nil {
				log.Printf("Skipping report image %s: %v", url, err)
				continue
			}
			out, imgType, err := transcoder.Transcode(data)
			if err != nil {
				out, imgType = data, DetectImageType(data)
			}
			if imgType == "" {
				// Not an embeddable format
				log.Printf("Skipping report image %s: unrecognized format", url)
				continue
			}
			table[url] = Asset{Data: out, Type: imgType}
		}
	}
	return table
}

// DetectImageType sniffs the formats the PDF writer can embed.
func DetectImageType(data []byte) string {
	switch {
	case len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "JPG"
	case len(data) > 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return "PNG"
	case len(data) > 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "GIF"
	default:
		return ""
	}
}
