// Command bookingctl submits a table booking to a running site, the same way
// the booking form does, and prints or opens the WhatsApp link.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rizfc/restaurant-site/client"
	"github.com/rizfc/restaurant-site/config"
	"github.com/rizfc/restaurant-site/schema"
	"github.com/rizfc/restaurant-site/utils"
)

func main() {
	_ = godotenv.Load()
	utils.InitLogger()

	d := client.NewDraft(time.Now())
	var (
		baseURL = flag.String("url", "http://localhost:8080", "site base URL")
		number  = flag.String("whatsapp", envOr("WHATSAPP_NUMBER", config.DefaultWhatsAppNumber), "WhatsApp number receiving the booking")
		open    = flag.Bool("open", false, "open the WhatsApp link in the browser instead of printing it")
		timeout = flag.Duration("timeout", 15*time.Second, "request timeout")
		message = flag.String("message", "", "optional message for the restaurant")
	)
	flag.StringVar(&d.Name, "name", "", "your name")
	flag.StringVar(&d.Email, "email", "", "your email")
	flag.StringVar(&d.Phone, "phone", "", "your phone number")
	flag.StringVar(&d.Date, "date", d.Date, "booking date (YYYY-MM-DD)")
	flag.StringVar(&d.Time, "time", d.Time, "booking time (HH:MM)")
	flag.IntVar(&d.Guests, "guests", d.Guests, "number of guests")
	flag.Parse()

	if *message != "" {
		d.Message = message
	}

	var opener client.Opener = client.PrintOpener{W: os.Stdout}
	if *open {
		opener = client.BrowserOpener{}
	}
	form := client.NewForm(*baseURL, *number, client.LogNotifier{Logger: utils.InfoLogger}, opener)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	booking, err := form.Submit(ctx, d)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
			}
		}
		os.Exit(1)
	}
	utils.InfoLogger.Printf("Booking #%d stored at %s", booking.ID, booking.CreatedAt.Format(time.RFC3339))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
