package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/appgallery/internal/client/client"
	"github.com/dmitrijs2005/appgallery/internal/client/config"
	"github.com/dmitrijs2005/appgallery/internal/client/images"
	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

type fakeClient struct {
	entries  []models.Entry
	fetchErr error

	registerErr  error
	registerErrs []error // consumed first, one per call
	updateErr    error
	updateErrs   []error
	deleteErr    error
	verifyOK     bool

	registered []models.Fields
	regImages  [][]models.ImagePayload
	regPass    []string
	updated    []models.Fields
	deleted    []string
	delPass    []string
	verified   []string
	closed     bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }
func (f *fakeClient) FetchAll(context.Context) ([]models.Entry, error) {
	return f.entries, f.fetchErr
}
func (f *fakeClient) Register(_ context.Context, fl models.Fields, pw string, imgs []models.ImagePayload) (string, error) {
	f.registered = append(f.registered, fl)
	f.regImages = append(f.regImages, imgs)
	f.regPass = append(f.regPass, pw)
	if len(f.registerErrs) > 0 {
		err := f.registerErrs[0]
		f.registerErrs = f.registerErrs[1:]
		return "", err
	}
	return "", f.registerErr
}
func (f *fakeClient) Update(_ context.Context, id string, fl models.Fields) (string, error) {
	f.updated = append(f.updated, fl)
	if len(f.updateErrs) > 0 {
		err := f.updateErrs[0]
		f.updateErrs = f.updateErrs[1:]
		return "", err
	}
	return "", f.updateErr
}
func (f *fakeClient) Delete(_ context.Context, id string, pw string) (string, error) {
	f.deleted = append(f.deleted, id)
	f.delPass = append(f.delPass, pw)
	return "", f.deleteErr
}
func (f *fakeClient) VerifyPassword(_ context.Context, _ string, pw string) (bool, error) {
	f.verified = append(f.verified, pw)
	return f.verifyOK && pw == "owner", nil
}

type fakeSource struct{}

func (fakeSource) Open(_ context.Context, ref string) (images.Image, error) {
	return images.Image{Name: ref, Type: "image/png", Data: []byte(ref)}, nil
}

func newTestApp(t *testing.T, fc *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &config.Config{CreationPassword: "letmein", DeniedAuthor: common.DefaultDeniedAuthor}
	a := NewApp(cfg, fc, fakeSource{}, nil)
	a.out = &out
	a.reader = bufio.NewReader(bytes.NewReader(nil))
	require.NoError(t, a.gallery.Refresh(context.Background()))
	return a, &out
}

// stubPasswords answers successive password prompts in order.
func stubPasswords(t *testing.T, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	orig := getPassword
	getPassword = func(_ io.Writer, prompt string) ([]byte, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return nil, io.EOF
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
	t.Cleanup(func() { getPassword = orig })
	return &prompts
}

// stubText answers successive text prompts in order; getDefaultText keeps
// the current value when the answer is empty. It returns the prompt count.
func stubText(t *testing.T, answers ...string) *int {
	t.Helper()
	origST, origDT := getSimpleText, getDefaultText
	var asked int
	next := func() (string, error) {
		asked++
		if len(answers) == 0 {
			return "", io.EOF
		}
		v := answers[0]
		answers = answers[1:]
		return v, nil
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getDefaultText = func(_ *bufio.Reader, _ string, cur string, _ io.Writer) (string, error) {
		v, err := next()
		if v == "" {
			v = cur
		}
		return v, err
	}
	t.Cleanup(func() { getSimpleText, getDefaultText = origST, origDT })
	return &asked
}

func stubImages(t *testing.T, refs ...string) {
	t.Helper()
	orig := getList
	getList = func(*bufio.Reader, string, io.Writer) ([]string, error) { return refs, nil }
	t.Cleanup(func() { getList = orig })
}

func gallery() []models.Entry {
	return []models.Entry{
		{ID: "a1", Name: "Alpha", Author: "kim", URL: "https://alpha", Images: []string{"https://img/1"}, Timestamp: "2024-01-01"},
		{ID: "h1", Name: "Hidden", Author: common.DefaultDeniedAuthor},
		{ID: "b2", Name: "Beta", Author: "lee", URL: "https://beta", Description: "**bold**"},
	}
}

// ------------ browse ------------

func TestList_HidesDeniedAuthor(t *testing.T) {
	a, out := newTestApp(t, &fakeClient{entries: gallery()})

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), " 1. Alpha (by kim)")
	assert.Contains(t, out.String(), " 2. Beta (by lee)")
	assert.Contains(t, out.String(), models.PlaceholderThumbnail)
	assert.NotContains(t, out.String(), "Hidden")
	assert.Equal(t, "(2 apps)", a.getStatus())
}

func TestList_EmptyAndBanner(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc)
	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "No apps registered yet.")

	fc.fetchErr = client.ErrUnavailable
	require.Error(t, a.Refresh(context.Background()))
	out.Reset()
	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "Server connection error.")
	assert.Equal(t, "(offline)", a.getStatus())
}

func TestShowAndOpen(t *testing.T) {
	a, out := newTestApp(t, &fakeClient{entries: gallery()})

	require.NoError(t, a.Show(context.Background(), "1"))
	s := out.String()
	assert.Contains(t, s, "Alpha")
	assert.Contains(t, s, "Author:     kim")
	assert.Contains(t, s, "Registered: 2024-01-01")
	assert.Contains(t, s, models.NoDescription)
	assert.Contains(t, s, "  https://img/1")

	out.Reset()
	require.NoError(t, a.Open(context.Background(), "b2"))
	assert.Equal(t, "https://beta\n", out.String())

	out.Reset()
	err := a.Show(context.Background(), "h1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, out.String(), "No such app")
}

// ------------ register ------------

func TestRegister_RetriesGateThenSubmits(t *testing.T) {
	fc := &fakeClient{entries: gallery()}
	a, out := newTestApp(t, fc)

	prompts := stubPasswords(t, "wrong", "letmein", "owner-pw")
	stubText(t, "kim", "Planner", "plans", "https://planner")
	stubImages(t, "1.png", "2.png", "3.png", "4.png")

	require.NoError(t, a.Register(context.Background()))

	assert.Len(t, *prompts, 3)
	assert.Contains(t, out.String(), "Incorrect password.")
	assert.Contains(t, out.String(), "Registered successfully!")

	require.Len(t, fc.registered, 1)
	assert.Equal(t, models.Fields{Author: "kim", Name: "Planner", Description: "plans", URL: "https://planner"}, fc.registered[0])
	assert.Equal(t, "owner-pw", fc.regPass[0])
	assert.Len(t, fc.regImages[0], common.MaxImages)
}

func TestRegister_CancelAndValidation(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc)

	stubPasswords(t, "")
	require.NoError(t, a.Register(context.Background()))
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Empty(t, fc.registered)

	out.Reset()
	stubPasswords(t, "letmein", "owner")
	stubText(t, "kim", "", "d", "u")
	stubImages(t, "1.png")
	err := a.Register(context.Background())
	assert.ErrorIs(t, err, models.ErrMissingField)
	assert.Contains(t, out.String(), "Please fill in the name field.")
	assert.Empty(t, fc.registered)
}

// ------------ edit / delete ------------

func TestEdit_RemoteGateAndPrefill(t *testing.T) {
	fc := &fakeClient{entries: gallery(), verifyOK: true}
	a, out := newTestApp(t, fc)

	stubPasswords(t, "nope", "owner")
	stubText(t, "", "Alpha 2", "new description", "")

	require.NoError(t, a.Edit(context.Background(), "1"))
	assert.Equal(t, []string{"nope", "owner"}, fc.verified)
	require.Len(t, fc.updated, 1)
	assert.Equal(t, models.Fields{Author: "kim", Name: "Alpha 2", Description: "new description", URL: "https://alpha"}, fc.updated[0])
	assert.Contains(t, out.String(), "Saved successfully!")
}

func TestDelete_PassThrough(t *testing.T) {
	fc := &fakeClient{entries: gallery(), deleteErr: &client.RemoteError{Action: common.ActionDeleteApp}}
	a, out := newTestApp(t, fc)

	stubPasswords(t, " pw ")
	err := a.Delete(context.Background(), "2")
	require.True(t, errors.Is(err, client.ErrRemoteFailure))
	assert.Equal(t, []string{"b2"}, fc.deleted)
	assert.Equal(t, []string{" pw "}, fc.delPass)
	assert.Empty(t, fc.verified)
	assert.Contains(t, out.String(), "Delete failed. Please check the password.")
}

func TestRun_ClosesClient(t *testing.T) {
	capturePrintln(t)
	fc := &fakeClient{}
	a, _ := newTestApp(t, fc)

	a.Run(context.Background())
	assert.True(t, fc.closed)
}

// ------------ failed submits keep the form ------------

func TestRegister_FailureKeepsFormForRetry(t *testing.T) {
	fc := &fakeClient{registerErrs: []error{
		&client.RemoteError{Action: common.ActionRegisterApp, Message: "quota exceeded"},
	}}
	a, out := newTestApp(t, fc)

	prompts := stubPasswords(t, "letmein", "owner")
	asked := stubText(t, "kim", "Planner", "plans", "https://planner", "r")
	stubImages(t, "1.png")

	require.NoError(t, a.Register(context.Background()))

	assert.Contains(t, out.String(), "quota exceeded")
	assert.Contains(t, out.String(), "Registered successfully!")
	require.Len(t, fc.registered, 2)
	assert.Equal(t, fc.registered[0], fc.registered[1])
	assert.Equal(t, []string{"owner", "owner"}, fc.regPass)
	assert.Len(t, fc.regImages[1], 1)
	assert.Equal(t, 5, *asked, "four fields and one retry choice, nothing re-asked")
	assert.Len(t, *prompts, 2, "creation gate is not asked again")
}

func TestRegister_FailureEditThenCancel(t *testing.T) {
	fc := &fakeClient{registerErr: &client.RemoteError{Action: common.ActionRegisterApp}}
	a, out := newTestApp(t, fc)

	stubPasswords(t, "letmein", "owner")
	asked := stubText(t,
		"kim", "Planner", "plans", "https://planner",
		"e", "", "Planner 2", "", "",
		"c",
	)
	stubImages(t, "1.png")

	err := a.Register(context.Background())
	assert.ErrorIs(t, err, client.ErrRemoteFailure)
	assert.Contains(t, out.String(), "Registration failed.")

	require.Len(t, fc.registered, 2)
	assert.Equal(t, models.Fields{Author: "kim", Name: "Planner 2", Description: "plans", URL: "https://planner"}, fc.registered[1])
	assert.Equal(t, "owner", fc.regPass[1])
	assert.Equal(t, 10, *asked)
}

func TestEdit_FailureRetriesSameFields(t *testing.T) {
	fc := &fakeClient{entries: gallery(), verifyOK: true, updateErrs: []error{client.ErrUnavailable}}
	a, out := newTestApp(t, fc)

	stubPasswords(t, "owner")
	asked := stubText(t, "", "Alpha 2", "new description", "", "r")

	require.NoError(t, a.Edit(context.Background(), "a1"))

	assert.Contains(t, out.String(), "An error occurred while sending the changes to the server.")
	assert.Contains(t, out.String(), "Saved successfully!")
	require.Len(t, fc.updated, 2)
	assert.Equal(t, fc.updated[0], fc.updated[1])
	assert.Equal(t, "Alpha 2", fc.updated[1].Name)
	assert.Equal(t, []string{"owner"}, fc.verified, "owner gate passed once")
	assert.Equal(t, 5, *asked)
}

func TestDelete_EmptyPasswordCancels(t *testing.T) {
	fc := &fakeClient{entries: gallery()}
	a, out := newTestApp(t, fc)

	stubPasswords(t, "")
	require.NoError(t, a.Delete(context.Background(), "b2"))
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Empty(t, fc.deleted, "empty password is never sent")
	assert.Contains(t, helpText, "password is never sent")
}
