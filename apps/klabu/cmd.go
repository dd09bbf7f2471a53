package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/enrollment"
	"github.com/trezcool/klabu/core/notice"
	"github.com/trezcool/klabu/core/program"
	"github.com/trezcool/klabu/core/session"
	"github.com/trezcool/klabu/core/stats"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	holder   *session.Holder
	programs *program.Service
	gate     *enrollment.Gate
	notices  *notice.Service
	stats    *stats.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -role student|teacher|admin -email EMAIL - log in (password prompted)")
	fmt.Println("  logout - drop the current session")
	fmt.Println("  signup -role student|teacher -name NAME -email EMAIL - register (password prompted)")
	fmt.Println("  whoami - show the current session")
	fmt.Println("  programs [-search QUERY] - browse the catalog")
	fmt.Println("  enroll -class ID - enroll in a program")
	fmt.Println("  myclasses - list enrolled classes")
	fmt.Println("  schedule [-date YYYY-MM-DD | -month YYYY-MM] - project enrolled classes onto dates")
	fmt.Println("  myprograms - list the programs I teach")
	fmt.Println("  createprogram -title T -desc D -location L -capacity N -slot DAY,HH:MM,HH:MM [-slot ...] - create a program")
	fmt.Println("  updateprogram -class ID -title T -desc D -location L -capacity N -slot ... - update a program")
	fmt.Println("  deleteprogram -class ID - delete a program")
	fmt.Println("  roster -class ID - list a program's students")
	fmt.Println("  notices - list my notices (role-scoped)")
	fmt.Println("  createnotice -class ID -type COMMON|CANCELED|CHANGE -title T -content C - post a notice")
	fmt.Println("  updatenotice -notice ID -type TYPE -title T -content C - edit a notice")
	fmt.Println("  deletenotice -notice ID - delete a notice")
	fmt.Println("  dash - admin dashboard totals")
	fmt.Println("  students [-search QUERY] - admin student directory")
	fmt.Println("  teachers [-search QUERY] - admin teacher directory")
	fmt.Println("  deletestudent -student ID - admin: delete a student")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.login(args[2:])
	case "logout":
		return cli.logout()
	case "signup":
		return cli.signup(args[2:])
	case "whoami":
		return cli.whoami()
	case "programs":
		return cli.browsePrograms(args[2:])
	case "enroll":
		return cli.enroll(args[2:])
	case "myclasses":
		return cli.myClasses()
	case "schedule":
		return cli.schedule(args[2:])
	case "myprograms":
		return cli.myPrograms()
	case "createprogram":
		return cli.createProgram(args[2:])
	case "updateprogram":
		return cli.updateProgram(args[2:])
	case "deleteprogram":
		return cli.deleteProgram(args[2:])
	case "roster":
		return cli.roster(args[2:])
	case "notices":
		return cli.listNotices()
	case "createnotice":
		return cli.createNotice(args[2:])
	case "updatenotice":
		return cli.updateNotice(args[2:])
	case "deletenotice":
		return cli.deleteNotice(args[2:])
	case "dash":
		return cli.dashboard()
	case "students":
		return cli.listStudents(args[2:])
	case "teachers":
		return cli.listTeachers(args[2:])
	case "deletestudent":
		return cli.deleteStudent(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// requireRole fails closed before any request when no session is active or
// the active role does not match.
func (cli *commandLine) requireRole(roles ...session.Role) (session.Session, error) {
	s, ok := cli.holder.Current()
	if !ok {
		return session.Session{}, core.ErrAuthRequired
	}
	if len(roles) == 0 {
		return s, nil
	}
	for _, role := range roles {
		if s.Role == role {
			return s, nil
		}
	}
	return session.Session{}, errors.Wrapf(core.ErrPermissionDenied, "%s command", s.Role)
}

// fmtError renders validation errors field by field; everything else as-is.
func fmtError(err error) string {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		msgs := make([]string, 0, len(origErr))
		for _, vErr := range origErr {
			msgs = append(msgs, fmt.Sprintf("%s: %s", vErr.Field(), vErr.Translate(core.Translator)))
		}
		return strings.Join(msgs, "; ")
	case *core.ValidationError:
		if origErr.Fields != nil {
			msgs := make([]string, 0, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fErr.Field, fErr.Error))
			}
			return strings.Join(msgs, "; ")
		}
		return origErr.Error()
	case *core.ServerError:
		return fmt.Sprintf("server error (%d): %s", origErr.Status, origErr.Error())
	}
	return err.Error()
}

// slotList parses repeated -slot DAY,HH:MM,HH:MM flags into schedule entries.
type slotList []program.ScheduleEntry

func (sl *slotList) String() string {
	parts := make([]string, 0, len(*sl))
	for _, s := range *sl {
		parts = append(parts, fmt.Sprintf("%s,%s,%s", s.DayOfWeek, s.StartTime, s.EndTime))
	}
	return strings.Join(parts, " ")
}

func (sl *slotList) Set(val string) error {
	parts := strings.Split(val, ",")
	if len(parts) != 3 {
		return errors.New("expected DAY,HH:MM,HH:MM")
	}
	*sl = append(*sl, program.ScheduleEntry{
		DayOfWeek: program.Weekday(core.CleanString(strings.ToUpper(parts[0]))),
		StartTime: core.CleanString(parts[1]),
		EndTime:   core.CleanString(parts[2]),
	})
	return nil
}

func formatSlots(schedules []program.ScheduleEntry) string {
	if len(schedules) == 0 {
		return "unscheduled"
	}
	parts := make([]string, 0, len(schedules))
	for _, s := range schedules {
		parts = append(parts, fmt.Sprintf("%s %s~%s", s.DayOfWeek, s.StartTime, s.EndTime))
	}
	return strings.Join(parts, ", ")
}

func sortOccurrences(occurrences []program.Occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}
		return occurrences[i].StartTime < occurrences[j].StartTime
	})
}
