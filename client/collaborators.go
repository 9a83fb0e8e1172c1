package client

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rizfc/restaurant-site/schema"
)

// NewDraft returns the form's starting values: two guests today at 19:00.
func NewDraft(now time.Time) schema.Draft {
	return schema.Draft{
		Date:   now.Format(schema.DateLayout),
		Time:   "19:00",
		Guests: 2,
	}
}

// LogNotifier writes notifications to a logrus logger.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) Success(title, description string) {
	n.Logger.WithField("title", title).Info(description)
}

func (n LogNotifier) Failure(title, description string) {
	n.Logger.WithField("title", title).Error(description)
}

// PrintOpener prints the URL instead of opening it.
type PrintOpener struct {
	W io.Writer
}

func (o PrintOpener) Open(url string) error {
	_, err := fmt.Fprintln(o.W, url)
	return err
}

// BrowserOpener hands the URL to the desktop's default handler.
type BrowserOpener struct{}

func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
