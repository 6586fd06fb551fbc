package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register collects the sign-up form and creates the account. The new user is
// logged in right away.
func (a *App) Register(ctx context.Context) error {
	var reg models.Registration
	var err error

	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Enter email", &reg.Email},
		{"Enter username", &reg.Username},
		{"Enter first name", &reg.FirstName},
		{"Enter last name", &reg.LastName},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.prompt, a.out); err != nil {
			return err
		}
	}

	age, err := getSimpleText(a.reader, "Enter age", a.out)
	if err != nil {
		return err
	}
	// A non-numeric age is left at zero and rejected by validation.
	reg.Age, _ = strconv.Atoi(age)

	if reg.PhoneNumber, err = getSimpleText(a.reader, "Enter phone number (optional)", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer wipe(confirm)

	reg.Password = string(password)
	if err := a.authService.Register(ctx, reg, string(confirm)); err != nil {
		return err
	}

	a.println("Registration successful. Welcome!")
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.authService.Login(ctx, email, string(password)); err != nil {
		return err
	}

	if st := a.authService.State(); st.User != nil {
		a.printf("Welcome, %s!\n", displayName(*st.User))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	st := a.authService.State()
	if st.User == nil {
		a.println(msgLoginFirst)
		return nil
	}
	u := st.User

	a.printf("Username:   %s\n", u.Username)
	a.printf("Email:      %s\n", u.Email)
	a.printf("First name: %s\n", u.FirstName)
	a.printf("Last name:  %s\n", u.LastName)
	a.printf("Age:        %d\n", u.Age)
	if u.PhoneNumber != "" {
		a.printf("Phone:      %s\n", u.PhoneNumber)
	}
	return nil
}

// EditProfile asks for each editable field; an empty answer keeps the
// current value. Only changed fields are sent.
func (a *App) EditProfile(ctx context.Context) error {
	st := a.authService.State()
	if st.User == nil {
		a.println(msgLoginFirst)
		return nil
	}
	u := st.User

	var upd models.ProfileUpdate

	fields := []struct {
		label   string
		current string
		dst     **string
	}{
		{"First name", u.FirstName, &upd.FirstName},
		{"Last name", u.LastName, &upd.LastName},
		{"Email", u.Email, &upd.Email},
		{"Phone number", u.PhoneNumber, &upd.PhoneNumber},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.label+" ["+f.current+"]", a.out)
		if err != nil {
			return err
		}
		if v != "" && v != f.current {
			*f.dst = &v
		}
	}

	age, err := getSimpleText(a.reader, "Age ["+strconv.Itoa(u.Age)+"]", a.out)
	if err != nil {
		return err
	}
	if age != "" {
		// A non-numeric age becomes zero and is rejected by validation.
		n, _ := strconv.Atoi(age)
		if n != u.Age {
			upd.Age = &n
		}
	}

	if upd.Empty() {
		a.println("Nothing to update.")
		return nil
	}

	if err := a.authService.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	a.println("Profile updated.")
	return nil
}

func displayName(u models.User) string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}
