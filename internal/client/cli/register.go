package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/client/services"
	"github.com/dmitrijs2005/appgallery/internal/common"
)

// Register asks for the shared creation password and, once it passes,
// collects the new entry and submits it.
func (a *App) Register(ctx context.Context) error {
	err := a.creation.Prompt(ctx, a.passwordAsker("Creation password"), func(string) error {
		return a.registerForm(ctx)
	})
	return a.finish(err)
}

func (a *App) registerForm(ctx context.Context) error {
	var (
		in  services.RegistrationInput
		err error
	)

	if in.Fields, err = a.readFields(models.Fields{}); err != nil {
		return err
	}
	if in.Images, err = getList(a.reader, "Screenshots: file paths or s3:// URLs, separated by spaces (first 3 are used)", a.out); err != nil {
		return err
	}

	pw, err := getPassword(a.out, "Owner password (needed to edit or delete later)")
	if err != nil {
		return err
	}
	in.Password = string(pw)
	common.WipeByteArray(pw)

	reg := a.gallery.NewRegistration(a.images)
	for {
		msg, err := reg.Submit(ctx, in)
		if err == nil {
			a.println(services.SuccessMessage(services.ActionRegister, msg))
			return nil
		}
		a.println(services.UserMessage(services.ActionRegister, err))

		switch a.afterFailure() {
		case choiceRetry:
		case choiceEdit:
			if err := a.reviseRegistration(&in); err != nil {
				return err
			}
		default:
			return err
		}
	}
}

// reviseRegistration re-asks every field with the entered values as
// defaults. An empty image list keeps the current one; the owner password is
// asked again only when it is missing.
func (a *App) reviseRegistration(in *services.RegistrationInput) error {
	fields, err := a.readFields(in.Fields)
	if err != nil {
		return err
	}
	in.Fields = fields

	prompt := "Screenshots: file paths or s3:// URLs, separated by spaces (first 3 are used)"
	if len(in.Images) > 0 {
		prompt = "Screenshots (Enter keeps " + strings.Join(in.Images, " ") + ")"
	}
	refs, err := getList(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		in.Images = refs
	}

	if in.Password == "" {
		pw, err := getPassword(a.out, "Owner password (needed to edit or delete later)")
		if err != nil {
			return err
		}
		in.Password = string(pw)
		common.WipeByteArray(pw)
	}
	return nil
}

// readFields asks for the four free-text fields. Non-empty values in current
// are offered as defaults.
func (a *App) readFields(current models.Fields) (models.Fields, error) {
	var f models.Fields
	prompts := []struct {
		label string
		dst   *string
		cur   string
	}{
		{"Author", &f.Author, current.Author},
		{"App name", &f.Name, current.Name},
		{"Description (Markdown)", &f.Description, current.Description},
		{"App URL", &f.URL, current.URL},
	}
	for _, p := range prompts {
		var (
			v   string
			err error
		)
		if p.cur != "" {
			v, err = getDefaultText(a.reader, p.label, p.cur, a.out)
		} else {
			v, err = getSimpleText(a.reader, p.label, a.out)
		}
		if err != nil {
			return models.Fields{}, err
		}
		*p.dst = v
	}
	return f, nil
}
