package cli

import (
	"context"

	"github.com/dmitrijs2005/appgallery/internal/client/services"
)

// Edit verifies the owner password with the endpoint, then collects and
// sends the changed fields. Images and the password itself stay as they are.
func (a *App) Edit(ctx context.Context, ref string) error {
	entry, err := a.gallery.Resolve(ref)
	if err != nil {
		a.println("No such app:", ref)
		return err
	}

	ed := a.gallery.NewEdit(entry)
	err = ed.Gate().Prompt(ctx, a.passwordAsker("Owner password for "+entry.Name), func(string) error {
		ed.Grant()

		fields, err := a.readFields(ed.Form())
		if err != nil {
			return err
		}
		for {
			msg, err := ed.Submit(ctx, fields)
			if err == nil {
				a.println(services.SuccessMessage(services.ActionUpdate, msg))
				return nil
			}
			a.println(services.UserMessage(services.ActionUpdate, err))

			switch a.afterFailure() {
			case choiceRetry:
			case choiceEdit:
				if fields, err = a.readFields(fields); err != nil {
					return err
				}
			default:
				return err
			}
		}
	})
	return a.finish(err)
}
