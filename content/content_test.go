package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	t.Setenv("WHATSAPP_NUMBER", "")

	c, err := Load("", "8552997625")
	require.NoError(t, err)

	assert.Equal(t, "RIZFC", c.Brand)
	assert.Equal(t, "8552997625", c.WhatsAppNumber)
	assert.Equal(t, "https://wa.me/8552997625", c.ChatURL)
	assert.Len(t, c.NavLinks, 4)
	assert.Len(t, c.MenuImages, 3)
	assert.Len(t, c.GalleryImages, 6)
	assert.Len(t, c.Reviews, 5)
	assert.Equal(t, 2, c.BookingForm.DefaultGuests)
	assert.Equal(t, "19:00", c.BookingForm.DefaultTime)
	assert.Equal(t, "rizwanrhan124@gmail.com", c.Contact.Email)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("WHATSAPP_NUMBER", "+91 99999 00000")

	c, err := Load("", "8552997625")
	require.NoError(t, err)
	assert.Equal(t, "+91 99999 00000", c.WhatsAppNumber)
	assert.Equal(t, "https://wa.me/919999900000", c.ChatURL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	doc := `
brand: Test Kitchen
whatsapp_number: "111"
reviews:
  - name: A
    rating: 4
    text: fine
    date: today
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Test Kitchen", c.Brand)
	assert.Equal(t, "111", c.WhatsAppNumber)
	assert.Len(t, c.Reviews, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "1")
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	doc := `
reviews:
  - name: A
    rating: 9
gallery_images:
  - alt: no source
`
	_, err := Parse([]byte(doc), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whatsapp_number is required")
	assert.Contains(t, err.Error(), "reviews[0]: rating must be between 1 and 5")
	assert.Contains(t, err.Error(), "gallery_images[0]: src is required")

	_, err = Parse([]byte("brand: [unclosed"), "1")
	assert.Error(t, err)
}
