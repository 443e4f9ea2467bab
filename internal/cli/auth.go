package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/jobtrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates a new account.
// On success the new account becomes the active session.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.accounts.SignUp(ctx, name, email, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", p.Name))
	return nil
}

// Login prompts for credentials and tries to authenticate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.accounts.Login(ctx, email, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", p.Name))
	return nil
}

// Logout clears the active session.
func (a *App) Logout(ctx context.Context) error {
	a.accounts.Logout(ctx)
	printlnFn("Logged out")
	return nil
}
