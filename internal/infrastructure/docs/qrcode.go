package docs

import (
	"encoding/base64"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

// qrDataURL encodes a URL as a PNG QR code data URI for inlining into
// document templates. An empty URL yields an empty URI and the template
// skips the image.
func qrDataURL(url string) (template.URL, error) {
	if url == "" {
		return "", nil
	}
	png, err := qrcode.Encode(url, qrcode.Medium, 180)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
