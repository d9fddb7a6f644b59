package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/credvault/internal/expiry"
	"github.com/dmitrijs2005/credvault/internal/vault"
)

// Add prompts for the new entry's fields. A blank password triggers a
// generated one, like the original interactive flow.
func (a *App) Add(ctx context.Context) error {
	req := vault.AddRequest{}
	var err error

	if req.ServiceName, err = getSimpleText(a.reader, "Enter service name", os.Stdout); err != nil {
		return err
	}
	if req.OfficeID, err = getSimpleText(a.reader, "Enter office ID (optional)", os.Stdout); err != nil {
		return err
	}
	if req.UserID, err = getSimpleText(a.reader, "Enter user ID", os.Stdout); err != nil {
		return err
	}
	if req.Secret, err = getSimpleText(a.reader, "Enter password (leave blank to generate one)", os.Stdout); err != nil {
		return err
	}
	if req.Secret == "" {
		req.Secret = generateSecret()
		fmt.Println("Generated password: " + req.Secret)
	}
	if req.SiteURL, err = getSimpleText(a.reader, "Enter site URL", os.Stdout); err != nil {
		return err
	}

	id, err := a.vaultService.Add(ctx, a.token, req)
	if err != nil {
		return err
	}

	fmt.Printf("Entry %s added (%s).\n", req.ServiceName, id)
	return nil
}

// List prints the owner's entries in creation order with their rotation status.
func (a *App) List(ctx context.Context) error {
	entries, err := a.vaultService.List(ctx, a.token)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	for i, e := range entries {
		fmt.Printf("%d. %s [%s] %s\n", i+1, e.ServiceName, expiry.Check(e, timeNow()), e.ID)
	}
	return nil
}

// Show prints one entry's details.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry ID", os.Stdout)
	if err != nil {
		return err
	}

	e, err := a.vaultService.Get(ctx, a.token, id)
	if err != nil {
		return err
	}

	fmt.Printf("Service: %s\n", e.ServiceName)
	if e.OfficeID != "" {
		fmt.Printf("Office ID: %s\n", e.OfficeID)
	}
	fmt.Printf("User ID: %s\n", e.UserID)
	fmt.Printf("Password: %s\n", e.Secret)
	fmt.Printf("Site URL: %s\n", e.SiteURL)
	fmt.Printf("Last rotated: %s (%s)\n", e.LastRotated.Format("2006-01-02"), expiry.Check(*e, timeNow()))
	return nil
}

// Update prompts for new values; blank input keeps the current value.
// A new password resets the entry's rotation timer.
func (a *App) Update(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry ID", os.Stdout)
	if err != nil {
		return err
	}

	req := vault.UpdateRequest{}
	if req.ServiceName, err = getSimpleText(a.reader, "New service name (blank keeps current)", os.Stdout); err != nil {
		return err
	}
	if req.OfficeID, err = getSimpleText(a.reader, "New office ID (blank keeps current)", os.Stdout); err != nil {
		return err
	}
	if req.UserID, err = getSimpleText(a.reader, "New user ID (blank keeps current)", os.Stdout); err != nil {
		return err
	}
	if req.Secret, err = getSimpleText(a.reader, "New password (blank keeps current)", os.Stdout); err != nil {
		return err
	}
	if req.SiteURL, err = getSimpleText(a.reader, "New site URL (blank keeps current)", os.Stdout); err != nil {
		return err
	}

	if err := a.vaultService.Update(ctx, a.token, id, req); err != nil {
		return err
	}

	fmt.Println("Entry updated.")
	return nil
}

// Delete removes an entry after confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry ID", os.Stdout)
	if err != nil {
		return err
	}

	confirm, err := getSimpleText(a.reader, "Delete this entry? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.vaultService.Delete(ctx, a.token, id); err != nil {
		return err
	}

	fmt.Println("Entry deleted.")
	return nil
}

// Reminders prints the entries due or overdue for rotation, most urgent first.
func (a *App) Reminders(ctx context.Context) error {
	due, err := a.vaultService.DueForReminder(ctx, a.token)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Println("No entries need rotating at the moment.")
		return nil
	}

	fmt.Println("Rotation reminders:")
	for _, r := range due {
		if r.DaysRemaining <= 0 {
			fmt.Printf("- %s is due for rotation (%d days past due)\n", r.Entry.ServiceName, -r.DaysRemaining)
		} else {
			fmt.Printf("- %s expires in %d days\n", r.Entry.ServiceName, r.DaysRemaining)
		}
	}
	return nil
}
