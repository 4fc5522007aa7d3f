package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/diary/internal/client/config"
	"github.com/dmitrijs2005/diary/internal/client/models"
	"github.com/dmitrijs2005/diary/internal/client/session"
	"github.com/dmitrijs2005/diary/internal/logging"
)

var errBoom = errors.New("boom")

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

type fakeAuth struct {
	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginPass []byte
	loginErr  error

	logoutCalled bool
	logoutErr    error

	current    *session.Session
	currentErr error

	user  *models.User
	meErr error

	pings   atomic.Int32
	pingErr error
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) Current(context.Context) (*session.Session, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	if f.current == nil {
		return nil, session.ErrNoSession
	}
	return f.current, nil
}

func (f *fakeAuth) Me(context.Context) (*models.User, error) { return f.user, f.meErr }

func (f *fakeAuth) Ping(context.Context) error {
	f.pings.Add(1)
	return f.pingErr
}

type fakeEntries struct {
	entries []models.Entry
	entry   *models.Entry
	upload  *models.ImageUpload
	url     string
	err     error

	lastID    string
	lastInput models.EntryInput
	lastData  []byte
}

func (f *fakeEntries) List(context.Context) ([]models.Entry, error) { return f.entries, f.err }

func (f *fakeEntries) Add(_ context.Context, in models.EntryInput) (*models.Entry, error) {
	f.lastInput = in
	return f.entry, f.err
}

func (f *fakeEntries) Edit(_ context.Context, id string, in models.EntryInput) (*models.Entry, error) {
	f.lastID, f.lastInput = id, in
	return f.entry, f.err
}

func (f *fakeEntries) Delete(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeEntries) NewImageUpload(context.Context) (*models.ImageUpload, error) {
	return f.upload, f.err
}

func (f *fakeEntries) UploadImage(_ context.Context, data []byte) (string, error) {
	f.lastData = data
	if f.err != nil {
		return "", f.err
	}
	return f.upload.Key, nil
}

func (f *fakeEntries) ImageURL(_ context.Context, key string) (string, error) {
	f.lastID = key
	return f.url, f.err
}

func newTestApp(as *fakeAuth, es *fakeEntries, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	if as == nil {
		as = &fakeAuth{}
	}
	if es == nil {
		es = &fakeEntries{}
	}
	return &App{
		config:       &config.Config{},
		logger:       logging.Nop{},
		authService:  as,
		entryService: es,
		reader:       rdr(input),
		out:          &out,
	}, &out
}
