package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGenerator_ProducesPNG(t *testing.T) {
	png, err := DefaultGenerator{}.Generate("https://menu.example.com/t/ABC123", 256)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestExternalImageURL(t *testing.T) {
	got := ExternalImageURL("https://api.qrserver.com/v1/create-qr-code/",
		"https://menu.example.com/t/ABC 123", 500)

	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=500x500&data=https%3A%2F%2Fmenu.example.com%2Ft%2FABC+123",
		got)
}

func TestTableLink(t *testing.T) {
	assert.Equal(t, "https://menu.example.com/t/ABC123",
		TableLink("https://menu.example.com", "ABC123"))
}
