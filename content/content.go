// Package content holds the static copy of the marketing page: navigation,
// menu boards, gallery, reviews and contact details.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rizfc/restaurant-site/deeplink"
)

//go:embed default.yaml
var defaultYAML []byte

type Link struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
}

type Image struct {
	Src  string `yaml:"src" json:"src"`
	Alt  string `yaml:"alt" json:"alt"`
	Span string `yaml:"span,omitempty" json:"span,omitempty"`
}

type Review struct {
	Name   string `yaml:"name" json:"name"`
	Rating int    `yaml:"rating" json:"rating"`
	Text   string `yaml:"text" json:"text"`
	Date   string `yaml:"date" json:"date"`
}

type BookingForm struct {
	GuestOptions  []int  `yaml:"guest_options" json:"guestOptions"`
	DefaultGuests int    `yaml:"default_guests" json:"defaultGuests"`
	DefaultTime   string `yaml:"default_time" json:"defaultTime"`
}

type Contact struct {
	Address []string `yaml:"address" json:"address"`
	Phone   string   `yaml:"phone" json:"phone"`
	Email   string   `yaml:"email" json:"email"`
	Hours   string   `yaml:"hours" json:"hours"`
	About   string   `yaml:"about" json:"about"`
}

type Content struct {
	Brand          string      `yaml:"brand" json:"brand"`
	WhatsAppNumber string      `yaml:"whatsapp_number" json:"whatsappNumber"`
	ChatURL        string      `yaml:"-" json:"chatUrl"`
	NavLinks       []Link      `yaml:"nav_links" json:"navLinks"`
	MenuImages     []Image     `yaml:"menu_images" json:"menuImages"`
	GalleryImages  []Image     `yaml:"gallery_images" json:"galleryImages"`
	Reviews        []Review    `yaml:"reviews" json:"reviews"`
	BookingForm    BookingForm `yaml:"booking_form" json:"bookingForm"`
	Contact        Contact     `yaml:"contact" json:"contact"`
}

// Load reads the content document at path, or the built-in one when path is
// empty. ${VAR} references are expanded from the environment first.
// fallbackNumber is used when the document leaves whatsapp_number empty.
func Load(path, fallbackNumber string) (*Content, error) {
	data := defaultYAML
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
		data = raw
	}
	return Parse(data, fallbackNumber)
}

func Parse(data []byte, fallbackNumber string) (*Content, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	var c Content
	if err := yaml.Unmarshal(expanded, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	if deeplink.Digits(c.WhatsAppNumber) == "" {
		c.WhatsAppNumber = fallbackNumber
	}
	c.ChatURL = deeplink.ChatURL(c.WhatsAppNumber)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) Validate() error {
	var errs []error

	if deeplink.Digits(c.WhatsAppNumber) == "" {
		errs = append(errs, errors.New("whatsapp_number is required"))
	}
	for i, img := range c.MenuImages {
		if img.Src == "" {
			errs = append(errs, fmt.Errorf("menu_images[%d]: src is required", i))
		}
	}
	for i, img := range c.GalleryImages {
		if img.Src == "" {
			errs = append(errs, fmt.Errorf("gallery_images[%d]: src is required", i))
		}
	}
	for i, r := range c.Reviews {
		if r.Rating < 1 || r.Rating > 5 {
			errs = append(errs, fmt.Errorf("reviews[%d]: rating must be between 1 and 5", i))
		}
	}
	if c.BookingForm.DefaultGuests < 0 {
		errs = append(errs, errors.New("booking_form.default_guests must not be negative"))
	}

	return errors.Join(errs...)
}
