package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/trezcool/klabu/core/notice"
	"github.com/trezcool/klabu/core/program"
	"github.com/trezcool/klabu/core/session"
)

func (cli *commandLine) myPrograms() error {
	if _, err := cli.requireRole(session.RoleTeacher); err != nil {
		return err
	}
	programs, err := cli.programs.Mine(context.Background())
	if err != nil {
		return err
	}
	if len(programs) == 0 {
		fmt.Println("no programs yet")
		return nil
	}
	for _, p := range programs {
		fmt.Printf("#%d %s (%d/%d) @ %s\n  %s\n", p.ID, p.Title, p.CurrentCount, p.Capacity, p.Location, formatSlots(p.Schedules))
	}
	return nil
}

func (cli *commandLine) createProgram(args []string) error {
	createCmd := flag.NewFlagSet("createprogram", flag.ExitOnError)
	title := createCmd.String("title", "", "program title")
	desc := createCmd.String("desc", "", "program description")
	location := createCmd.String("location", "", "where the class meets")
	capacity := createCmd.Int("capacity", 0, "maximum enrollment")
	var slots slotList
	createCmd.Var(&slots, "slot", "weekly slot as DAY,HH:MM,HH:MM; repeatable")
	if err := createCmd.Parse(args); err != nil {
		return err
	}
	if _, err := cli.requireRole(session.RoleTeacher); err != nil {
		return err
	}

	created, err := cli.programs.Create(context.Background(), program.NewProgram{
		Title:       *title,
		Description: *desc,
		Location:    *location,
		Capacity:    *capacity,
		Schedules:   slots,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created #%d %s\n", created.ID, created.Title)
	return nil
}

func (cli *commandLine) updateProgram(args []string) error {
	updateCmd := flag.NewFlagSet("updateprogram", flag.ExitOnError)
	classID := updateCmd.Int("class", 0, "the program's class id")
	title := updateCmd.String("title", "", "program title")
	desc := updateCmd.String("desc", "", "program description")
	location := updateCmd.String("location", "", "where the class meets")
	capacity := updateCmd.Int("capacity", 0, "maximum enrollment")
	var slots slotList
	updateCmd.Var(&slots, "slot", "weekly slot as DAY,HH:MM,HH:MM; repeatable")
	if err := updateCmd.Parse(args); err != nil {
		return err
	}
	if *classID == 0 {
		updateCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleTeacher); err != nil {
		return err
	}

	updated, err := cli.programs.Update(context.Background(), *classID, program.UpdateProgram{
		Title:       *title,
		Description: *desc,
		Location:    *location,
		Capacity:    *capacity,
		Schedules:   slots,
	})
	if err != nil {
		return err
	}
	fmt.Printf("updated #%d %s\n", updated.ID, updated.Title)
	return nil
}

func (cli *commandLine) deleteProgram(args []string) error {
	deleteCmd := flag.NewFlagSet("deleteprogram", flag.ExitOnError)
	classID := deleteCmd.Int("class", 0, "the program's class id")
	if err := deleteCmd.Parse(args); err != nil {
		return err
	}
	if *classID == 0 {
		deleteCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleTeacher, session.RoleAdmin); err != nil {
		return err
	}
	if err := cli.programs.Delete(context.Background(), *classID); err != nil {
		return err
	}
	fmt.Printf("deleted program #%d\n", *classID)
	return nil
}

func (cli *commandLine) roster(args []string) error {
	rosterCmd := flag.NewFlagSet("roster", flag.ExitOnError)
	classID := rosterCmd.Int("class", 0, "the program's class id")
	if err := rosterCmd.Parse(args); err != nil {
		return err
	}
	if *classID == 0 {
		rosterCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleTeacher, session.RoleAdmin); err != nil {
		return err
	}

	roster, err := cli.programs.Roster(context.Background(), *classID)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		fmt.Println("no students enrolled")
		return nil
	}
	for _, r := range roster {
		fmt.Printf("#%d %s (grade %d, class %d, no %d)\n", r.StudentID, r.Name, r.Grade, r.ClassNumber, r.StudentNumber)
	}
	return nil
}

func (cli *commandLine) listNotices() error {
	s, err := cli.requireRole(session.RoleStudent, session.RoleTeacher)
	if err != nil {
		return err
	}
	ctx := context.Background()

	var reconciled []notice.Reconciled
	switch s.Role {
	case session.RoleStudent:
		reconciled, err = cli.notices.ForStudent(ctx)
	default:
		reconciled, err = cli.notices.ForTeacher(ctx)
	}
	if err != nil {
		return err
	}
	printNotices(reconciled)
	return nil
}

func printNotices(reconciled []notice.Reconciled) {
	if len(reconciled) == 0 {
		fmt.Println("no notices")
		return
	}
	for _, r := range reconciled {
		class := fmt.Sprintf("class #%d", r.ClassID)
		if r.Resolution != notice.Resolved {
			class = fmt.Sprintf("%q (%s)", r.ClassTitle, r.Resolution)
		}
		fmt.Printf("#%d [%s] %s - %s\n  %s\n", r.ID, r.Type, r.Title, class, r.Content)
	}
}

func (cli *commandLine) createNotice(args []string) error {
	createCmd := flag.NewFlagSet("createnotice", flag.ExitOnError)
	classID := createCmd.Int("class", 0, "the program's class id")
	typeStr := createCmd.String("type", string(notice.TypeCommon), "COMMON, CANCELED or CHANGE")
	title := createCmd.String("title", "", "notice title")
	content := createCmd.String("content", "", "notice body")
	if err := createCmd.Parse(args); err != nil {
		return err
	}
	if *classID == 0 {
		createCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleTeacher); err != nil {
		return err
	}

	reconciled, err := cli.notices.Create(context.Background(), *classID, notice.NewNotice{
		Title:   *title,
		Content: *content,
		Type:    notice.Type(*typeStr),
	})
	if err != nil {
		return err
	}
	printNotices(reconciled)
	return nil
}

func (cli *commandLine) updateNotice(args []string) error {
	updateCmd := flag.NewFlagSet("updatenotice", flag.ExitOnError)
	noticeID := updateCmd.Int("notice", 0, "the notice id")
	typeStr := updateCmd.String("type", string(notice.TypeCommon), "COMMON, CANCELED or CHANGE")
	title := updateCmd.String("title", "", "notice title")
	content := updateCmd.String("content", "", "notice body")
	if err := updateCmd.Parse(args); err != nil {
		return err
	}
	if *noticeID == 0 {
		updateCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleTeacher); err != nil {
		return err
	}

	reconciled, err := cli.notices.Update(context.Background(), *noticeID, notice.UpdateNotice{
		Title:   *title,
		Content: *content,
		Type:    notice.Type(*typeStr),
	})
	if err != nil {
		return err
	}
	printNotices(reconciled)
	return nil
}

func (cli *commandLine) deleteNotice(args []string) error {
	deleteCmd := flag.NewFlagSet("deletenotice", flag.ExitOnError)
	noticeID := deleteCmd.Int("notice", 0, "the notice id")
	if err := deleteCmd.Parse(args); err != nil {
		return err
	}
	if *noticeID == 0 {
		deleteCmd.Usage()
		return errHelp
	}
	if _, err := cli.requireRole(session.RoleTeacher); err != nil {
		return err
	}

	reconciled, err := cli.notices.Delete(context.Background(), *noticeID)
	if err != nil {
		return err
	}
	printNotices(reconciled)
	return nil
}
