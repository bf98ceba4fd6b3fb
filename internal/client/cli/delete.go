package cli

import (
	"context"

	"github.com/dmitrijs2005/appgallery/internal/client/services"
)

// Delete collects the owner password and sends it with the delete request.
func (a *App) Delete(ctx context.Context, ref string) error {
	entry, err := a.gallery.Resolve(ref)
	if err != nil {
		a.println("No such app:", ref)
		return err
	}

	d := a.gallery.NewDelete(entry)
	err = d.Gate().Prompt(ctx, a.passwordAsker("Owner password to delete "+entry.Name), func(pw string) error {
		msg, err := d.Submit(ctx, pw)
		if err != nil {
			a.println(services.UserMessage(services.ActionDelete, err))
			return err
		}
		a.println(services.SuccessMessage(services.ActionDelete, msg))
		return nil
	})
	return a.finish(err)
}
