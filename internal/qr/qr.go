package qr

import (
	"net/url"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

// Generator renders the PNG for a table link.
type Generator interface {
	Generate(link string, size int) ([]byte, error)
}

type DefaultGenerator struct{}

func (DefaultGenerator) Generate(link string, size int) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, size)
}

// ExternalImageURL builds the third-party QR image URL used for
// previews and printable downloads. The service is opaque: size and
// data are its only parameters.
func ExternalImageURL(base, link string, size int) string {
	dim := strconv.Itoa(size)
	return base + "?size=" + dim + "x" + dim + "&data=" + url.QueryEscape(link)
}

// TableLink is the guest-facing URL a short code resolves through.
func TableLink(publicBase, shortCode string) string {
	return publicBase + "/t/" + shortCode
}
