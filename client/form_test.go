package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizfc/restaurant-site/schema"
)

type toast struct {
	kind, title, description string
}

type recorder struct {
	mu     sync.Mutex
	toasts []toast
	opened []string
}

func (r *recorder) Success(title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast{"success", title, description})
}

func (r *recorder) Failure(title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast{"failure", title, description})
}

func (r *recorder) Open(u string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, u)
	return nil
}

func draft() schema.Draft {
	return schema.Draft{
		Name:   "Asha Rao",
		Email:  "asha@example.com",
		Phone:  "9876543210",
		Date:   "2024-05-01",
		Time:   "19:00",
		Guests: 4,
	}
}

func newForm(t *testing.T, h http.HandlerFunc) (*Form, *recorder, *int32) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	rec := &recorder{}
	f := NewForm(srv.URL+"/", "8552997625", rec, rec)
	f.HTTPClient = srv.Client()
	return f, rec, &calls
}

func TestSubmit_Success(t *testing.T) {
	f, rec, calls := newForm(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, BookingsPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Asha Rao", got["name"])
		assert.Equal(t, float64(4), got["guests"])
		_, hasMessage := got["message"]
		assert.False(t, hasMessage)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":7,"name":"Asha Rao","email":"asha@example.com","phone":"9876543210","date":"2024-05-01","time":"19:00","guests":4,"message":null,"createdAt":"2024-04-20T10:00:00Z"}`)
	})

	b, err := f.Submit(context.Background(), draft())
	require.NoError(t, err)
	assert.Equal(t, uint(7), b.ID)
	assert.Equal(t, int32(1), *calls)

	require.Len(t, rec.toasts, 1)
	assert.Equal(t, toast{"success", SuccessTitle, SuccessDescription}, rec.toasts[0])

	require.Len(t, rec.opened, 1)
	u, err := url.Parse(rec.opened[0])
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/8552997625", u.Path)
	text := u.Query().Get("text")
	for _, v := range []string{"Asha Rao", "2024-05-01", "19:00", "*Guests:* 4", "9876543210", "asha@example.com", "*Message:* None"} {
		assert.Contains(t, text, v)
	}
	assert.False(t, f.Pending())
}

func TestSubmit_InvalidDraftMakesNoRequest(t *testing.T) {
	f, rec, calls := newForm(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	d := draft()
	d.Phone = ""
	_, err := f.Submit(context.Background(), d)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("phone"))
	assert.Equal(t, int32(0), *calls)
	assert.Empty(t, rec.toasts)
	assert.Empty(t, rec.opened)
}

func TestSubmit_ServerMessage(t *testing.T) {
	f, rec, calls := newForm(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"guests must be 1 or greater"}`)
	})

	_, err := f.Submit(context.Background(), draft())
	require.Error(t, err)

	var serr *SubmitError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Equal(t, "guests must be 1 or greater", serr.Message)

	assert.Equal(t, int32(1), *calls, "no retry")
	require.Len(t, rec.toasts, 1)
	assert.Equal(t, toast{"failure", FailureTitle, "guests must be 1 or greater"}, rec.toasts[0])
	assert.Empty(t, rec.opened)
}

func TestSubmit_GenericMessageFallback(t *testing.T) {
	for name, body := range map[string]string{
		"html":          "<html>bad gateway</html>",
		"empty":         "",
		"blank message": `{"message":"  "}`,
	} {
		t.Run(name, func(t *testing.T) {
			f, rec, _ := newForm(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				io.WriteString(w, body)
			})

			_, err := f.Submit(context.Background(), draft())
			require.Error(t, err)
			assert.Equal(t, GenericFailure, err.Error())
			require.Len(t, rec.toasts, 1)
			assert.Equal(t, GenericFailure, rec.toasts[0].description)
		})
	}
}

func TestSubmit_NonJSONSuccessIsFailure(t *testing.T) {
	f, rec, _ := newForm(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "created")
	})

	_, err := f.Submit(context.Background(), draft())
	require.Error(t, err)
	assert.Equal(t, GenericFailure, err.Error())
	assert.Empty(t, rec.opened)
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	rec := &recorder{}
	f := NewForm(base, "8552997625", rec, rec)

	_, err := f.Submit(context.Background(), draft())
	require.Error(t, err)

	var serr *SubmitError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 0, serr.Status)
	assert.Equal(t, GenericFailure, serr.Message)
	assert.NotNil(t, serr.Unwrap())
	require.Len(t, rec.toasts, 1)
	assert.Equal(t, "failure", rec.toasts[0].kind)
}

func TestSubmit_GuardsConcurrentSubmits(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	f, rec, calls := newForm(t, func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":1,"createdAt":"2024-04-20T10:00:00Z"}`)
	})

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), draft())
		done <- err
	}()

	select {
	case <-arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("first submit never reached the server")
	}
	assert.True(t, f.Pending())

	_, err := f.Submit(context.Background(), draft())
	assert.ErrorIs(t, err, ErrSubmitPending)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), *calls)
	assert.Len(t, rec.opened, 1)
	assert.False(t, f.Pending())
}

func TestNewDraft(t *testing.T) {
	d := NewDraft(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-05-01", d.Date)
	assert.Equal(t, "19:00", d.Time)
	assert.Equal(t, 2, d.Guests)
}

func TestPrintOpener(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, PrintOpener{W: &sb}.Open("https://wa.me/1"))
	assert.Equal(t, "https://wa.me/1\n", sb.String())
}
