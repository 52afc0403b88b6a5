package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/oliveapp/olive-server/internal/locale"
	"github.com/oliveapp/olive-server/internal/model"
	"github.com/oliveapp/olive-server/internal/views"
)

// client wraps the olive REST API for the CLI.
type client struct {
	http *resty.Client
}

func newClient(baseURL, token string) *client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &client{http: c}
}

// do runs a request and converts non-2xx responses into errors.
func do(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (c *client) CreateNote(ctx context.Context, body map[string]interface{}) (*model.Note, error) {
	var out model.Note
	err := do(c.http.R().SetContext(ctx).SetBody(body).SetResult(&out).Post("/api/notes"))
	return &out, err
}

func (c *client) ListNotes(ctx context.Context, query map[string]string) ([]model.Note, error) {
	var out struct {
		Notes []model.Note `json:"notes"`
	}
	err := do(c.http.R().SetContext(ctx).SetQueryParams(query).SetResult(&out).Get("/api/notes"))
	return out.Notes, err
}

func (c *client) CompleteNote(ctx context.Context, noteID string) (*model.Note, error) {
	var out model.Note
	err := do(c.http.R().SetContext(ctx).SetResult(&out).Post("/api/notes/" + noteID + "/complete"))
	return &out, err
}

func (c *client) DeleteNote(ctx context.Context, noteID string) error {
	return do(c.http.R().SetContext(ctx).Delete("/api/notes/" + noteID))
}

func (c *client) CreateList(ctx context.Context, name string) (*model.List, error) {
	var out model.List
	err := do(c.http.R().SetContext(ctx).
		SetBody(map[string]interface{}{"name": name, "manual": true}).
		SetResult(&out).Post("/api/lists"))
	return &out, err
}

func (c *client) ListLists(ctx context.Context) ([]model.List, error) {
	var out struct {
		Lists []model.List `json:"lists"`
	}
	err := do(c.http.R().SetContext(ctx).SetResult(&out).Get("/api/lists"))
	return out.Lists, err
}

func (c *client) DeleteList(ctx context.Context, listID string) error {
	return do(c.http.R().SetContext(ctx).Delete("/api/lists/" + listID))
}

func (c *client) GetProfile(ctx context.Context) (*model.Profile, error) {
	var out model.Profile
	err := do(c.http.R().SetContext(ctx).SetResult(&out).Get("/api/profile"))
	return &out, err
}

func (c *client) PatchProfile(ctx context.Context, patch map[string]interface{}) (*model.Profile, error) {
	var out model.Profile
	err := do(c.http.R().SetContext(ctx).SetBody(patch).SetResult(&out).Patch("/api/profile"))
	return &out, err
}

func (c *client) PriorityView(ctx context.Context, limit int) ([]model.Note, error) {
	var out struct {
		Notes []model.Note `json:"notes"`
	}
	err := do(c.http.R().SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetResult(&out).Get("/api/views/priority"))
	return out.Notes, err
}

func (c *client) RemindersView(ctx context.Context) ([]views.Reminder, error) {
	var out struct {
		Reminders []views.Reminder `json:"reminders"`
	}
	err := do(c.http.R().SetContext(ctx).SetResult(&out).Get("/api/views/reminders"))
	return out.Reminders, err
}

func (c *client) BadgesView(ctx context.Context) (*views.Badges, error) {
	var out views.Badges
	err := do(c.http.R().SetContext(ctx).SetResult(&out).Get("/api/views/badges"))
	return &out, err
}

// Language implements language.PreferenceStore over the profile API, so
// the CLI can run the same resolution chain as the web session.
func (c *client) Language(ctx context.Context, _ string) (locale.Locale, bool, error) {
	p, err := c.GetProfile(ctx)
	if err != nil {
		return "", false, err
	}
	if p.Language == nil {
		return "", false, nil
	}
	l, ok := locale.Parse(*p.Language)
	if !ok {
		return "", false, nil
	}
	return l, true, nil
}

// SetLanguage implements language.PreferenceStore.
func (c *client) SetLanguage(ctx context.Context, _, _ string, l locale.Locale) error {
	_, err := c.PatchProfile(ctx, map[string]interface{}{"language": string(l)})
	return err
}
