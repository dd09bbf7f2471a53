package main

import (
	"context"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/klabu/core/session"
)

var readPasswordFunc = term.ReadPassword // mockable

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	return string(pwd), err
}

func (cli *commandLine) login(args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	roleStr := loginCmd.String("role", "", "student, teacher or admin")
	email := loginCmd.String("email", "", "account email")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *roleStr == "" || *email == "" {
		loginCmd.Usage()
		return errHelp
	}
	role, err := session.ParseRole(*roleStr)
	if err != nil {
		return err
	}
	pwd, err := promptPassword("Enter password:")
	if err != nil {
		return err
	}

	s, err := cli.holder.Login(context.Background(), role, session.Credentials{Email: *email, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", s.Email, s.Role)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.holder.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (cli *commandLine) signup(args []string) error {
	signupCmd := flag.NewFlagSet("signup", flag.ExitOnError)
	roleStr := signupCmd.String("role", "", "student or teacher")
	name := signupCmd.String("name", "", "full name")
	email := signupCmd.String("email", "", "account email")
	if err := signupCmd.Parse(args); err != nil {
		return err
	}
	if *roleStr == "" || *name == "" || *email == "" {
		signupCmd.Usage()
		return errHelp
	}
	role, err := session.ParseRole(*roleStr)
	if err != nil {
		return err
	}
	pwd, err := promptPassword("Enter password:")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password:")
	if err != nil {
		return err
	}

	err = cli.holder.Signup(context.Background(), role, session.NewAccount{
		Name:            *name,
		Email:           *email,
		Password:        pwd,
		PasswordConfirm: confirm,
	})
	if err != nil {
		return err
	}
	fmt.Println("account created; you can now log in")
	return nil
}

func (cli *commandLine) whoami() error {
	s, ok := cli.holder.Current()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", s.Email, s.Role)
	return nil
}
