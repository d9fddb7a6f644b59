package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/credvault/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, password, and email and creates the
// account. The password bytes are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.authService.Register(ctx, userName, password, email); err != nil {
		return err
	}

	fmt.Println("Registration successful. You can now log in.")
	return nil
}

// Login prompts for credentials and stores the session token on success,
// then shows how many entries are due for rotation, if any.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.authService.Authenticate(ctx, userName, password)
	if err != nil {
		return err
	}

	a.token = token
	a.userName = userName
	fmt.Println("Access granted!")

	if due, err := a.vaultService.DueForReminder(ctx, a.token); err == nil && len(due) > 0 {
		fmt.Printf("%d entr%s due for rotation. Type 'reminders' for details.\n",
			len(due), plural(len(due), "y is", "ies are"))
	}
	return nil
}

// Logout drops the current session.
func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.userName = ""
	fmt.Println("Logged out.")
	return nil
}

// ResetPassword prompts for a username and a new password. A notification
// event is emitted by the auth service; the CLI only reports the outcome.
func (a *App) ResetPassword(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.ResetPassword(ctx, userName, password); err != nil {
		return err
	}

	fmt.Println("Password reset successful. A notification has been sent.")
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
