package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core/enrollment"
	"github.com/trezcool/klabu/core/program"
	"github.com/trezcool/klabu/core/session"
)

func (cli *commandLine) browsePrograms(args []string) error {
	programsCmd := flag.NewFlagSet("programs", flag.ExitOnError)
	search := programsCmd.String("search", "", "filter by program title or teacher name")
	if err := programsCmd.Parse(args); err != nil {
		return err
	}
	if _, err := cli.requireRole(); err != nil {
		return err
	}

	programs, err := cli.programs.Filter(context.Background(), program.QueryFilter{Search: *search})
	if err != nil {
		return err
	}
	if len(programs) == 0 {
		fmt.Println("no programs found")
		return nil
	}
	for _, p := range programs {
		fmt.Printf("#%d %s - %s (%d/%d) @ %s\n  %s\n", p.ID, p.Title, p.TeacherName, p.CurrentCount, p.Capacity, p.Location, formatSlots(p.Schedules))
	}
	return nil
}

func (cli *commandLine) enroll(args []string) error {
	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	classID := enrollCmd.Int("class", 0, "the program's class id")
	if err := enrollCmd.Parse(args); err != nil {
		return err
	}
	if *classID == 0 {
		enrollCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleStudent); err != nil {
		return err
	}
	ctx := context.Background()

	// sync the local enrolled set, then find the program's last-known counts
	if _, err := cli.gate.Refresh(ctx); err != nil {
		return err
	}
	catalog, err := cli.programs.Catalog(ctx)
	if err != nil {
		return err
	}
	var target *program.Program
	for i := range catalog {
		if catalog[i].ID == *classID {
			target = &catalog[i]
			break
		}
	}
	if target == nil {
		return errors.Errorf("no program with class id %d", *classID)
	}

	switch outcome := cli.gate.Attempt(ctx, *target); outcome {
	case enrollment.Succeeded:
		// counts come from a re-fetch only; the gate never guesses them
		if classes, err := cli.gate.Refresh(ctx); err == nil {
			for _, c := range classes {
				if c.ID == target.ID {
					fmt.Printf("enrolled in %s (%d/%d)\n", c.Title, c.CurrentCount, c.Capacity)
					return nil
				}
			}
		}
		fmt.Printf("enrolled in %s\n", target.Title)
	case enrollment.RejectedDuplicate:
		fmt.Printf("already enrolled in %s\n", target.Title)
	case enrollment.RejectedFull:
		fmt.Printf("%s is full (%d/%d)\n", target.Title, target.CurrentCount, target.Capacity)
	default:
		return errors.Errorf("enrollment %s; it is safe to retry", outcome)
	}
	return nil
}

func (cli *commandLine) myClasses() error {
	if _, err := cli.requireRole(session.RoleStudent); err != nil {
		return err
	}
	classes, err := cli.gate.Refresh(context.Background())
	if err != nil {
		return err
	}
	if len(classes) == 0 {
		fmt.Println("no enrolled classes")
		return nil
	}
	for _, c := range classes {
		fmt.Printf("#%d %s - %s @ %s\n  %s\n", c.ID, c.Title, c.TeacherName, c.Location, formatSlots(c.Schedules))
	}
	return nil
}

func (cli *commandLine) schedule(args []string) error {
	scheduleCmd := flag.NewFlagSet("schedule", flag.ExitOnError)
	dateStr := scheduleCmd.String("date", "", "single date, YYYY-MM-DD (default: today)")
	monthStr := scheduleCmd.String("month", "", "whole month, YYYY-MM")
	if err := scheduleCmd.Parse(args); err != nil {
		return err
	}
	if _, err := cli.requireRole(session.RoleStudent); err != nil {
		return err
	}

	classes, err := cli.gate.Refresh(context.Background())
	if err != nil {
		return err
	}

	var occurrences []program.Occurrence
	switch {
	case *monthStr != "":
		t, err := time.ParseInLocation("2006-01", *monthStr, time.Local)
		if err != nil {
			return errors.Wrap(err, "parsing -month")
		}
		occurrences = cli.programs.MonthSchedule(classes, t)
	case *dateStr != "":
		t, err := time.ParseInLocation("2006-01-02", *dateStr, time.Local)
		if err != nil {
			return errors.Wrap(err, "parsing -date")
		}
		occurrences = cli.programs.DaySchedule(classes, t)
	default:
		occurrences = cli.programs.DaySchedule(classes, time.Now())
	}

	if len(occurrences) == 0 {
		fmt.Println("nothing scheduled")
		return nil
	}
	sortOccurrences(occurrences)
	for _, o := range occurrences {
		fmt.Printf("%s  %s~%s  %s @ %s\n", o.Date.Format("Mon 2006-01-02"), o.StartTime, o.EndTime, o.Title, o.Location)
	}
	return nil
}
