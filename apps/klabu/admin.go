package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/trezcool/klabu/core/session"
	"github.com/trezcool/klabu/core/stats"
)

func (cli *commandLine) dashboard() error {
	if _, err := cli.requireRole(session.RoleAdmin); err != nil {
		return err
	}
	agg := cli.stats.Aggregate(context.Background())

	printCount := func(label string, c stats.Count) {
		if c.OK() {
			fmt.Printf("%s: %d\n", label, c.Total)
		} else {
			fmt.Printf("%s: unavailable (%s)\n", label, fmtError(c.Err))
		}
	}
	printCount("students", agg.Students)
	printCount("teachers", agg.Teachers)
	printCount("programs", agg.Programs)
	return nil
}

func (cli *commandLine) listStudents(args []string) error {
	studentsCmd := flag.NewFlagSet("students", flag.ExitOnError)
	search := studentsCmd.String("search", "", "filter by name or email")
	if err := studentsCmd.Parse(args); err != nil {
		return err
	}
	if _, err := cli.requireRole(session.RoleAdmin); err != nil {
		return err
	}

	students, err := cli.stats.Students(context.Background(), stats.QueryFilter{Search: *search})
	if err != nil {
		return err
	}
	if len(students) == 0 {
		fmt.Println("no students found")
		return nil
	}
	for _, s := range students {
		fmt.Printf("#%d %s <%s> grade %d, class %d\n", s.ID, s.Name, s.Email, s.Grade, s.ClassNumber)
	}
	return nil
}

func (cli *commandLine) listTeachers(args []string) error {
	teachersCmd := flag.NewFlagSet("teachers", flag.ExitOnError)
	search := teachersCmd.String("search", "", "filter by name or email")
	if err := teachersCmd.Parse(args); err != nil {
		return err
	}
	if _, err := cli.requireRole(session.RoleAdmin); err != nil {
		return err
	}

	teachers, err := cli.stats.Teachers(context.Background(), stats.QueryFilter{Search: *search})
	if err != nil {
		return err
	}
	if len(teachers) == 0 {
		fmt.Println("no teachers found")
		return nil
	}
	for _, t := range teachers {
		fmt.Printf("#%d %s <%s> %s\n", t.ID, t.Name, t.Email, t.PhoneNumber)
	}
	return nil
}

func (cli *commandLine) deleteStudent(args []string) error {
	deleteCmd := flag.NewFlagSet("deletestudent", flag.ExitOnError)
	studentID := deleteCmd.Int("student", 0, "the student id")
	if err := deleteCmd.Parse(args); err != nil {
		return err
	}
	if *studentID == 0 {
		deleteCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleAdmin); err != nil {
		return err
	}
	if err := cli.stats.DeleteStudent(context.Background(), *studentID); err != nil {
		return err
	}
	fmt.Printf("deleted student #%d\n", *studentID)
	return nil
}
