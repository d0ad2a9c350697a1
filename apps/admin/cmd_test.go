package main

import (
	"database/sql"
	"fmt"
	"io/ioutil"
	"log"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/tshims/kazi/core/user"
	"github.com/tshims/kazi/storage/database/jsonfile"
	"github.com/tshims/kazi/tests"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	logger = log.New(ioutil.Discard, "", 0)

	db := testutil.OpenDB(t)
	return &commandLine{
		usrRepo: jsonfiledb.NewUserRepository(db),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	testutil.CreateUser(t, cli.usrRepo, "Taken", "taken@test.cd", "", user.RoleStudent)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing role", args: []string{"adduser", "-name", "Alice", "-email", "alice@test.cd"}, wantErr: errHelp},
		{name: "empty password", args: []string{"adduser", "-name", "Alice", "-email", "alice@test.cd", "-role", "student"}, wantErr: errHelp},
		{
			name: "unknown role", args: []string{"adduser", "-name", "Alice", "-email", "alice@test.cd", "-role", "admin"},
			extra: extra{pwd: "s3cret"}, wantErr: user.ErrInvalidRole,
		},
		{
			name: "taken email", args: []string{"adduser", "-name", "Taken Two", "-email", "taken@test.cd", "-role", "student"},
			extra: extra{pwd: "s3cret"}, wantErr: user.ErrEmailExists,
		},
		{name: "student created", args: []string{"adduser", "-name", "Alice", "-email", "alice@test.cd", "-role", "student"}, extra: extra{pwd: "s3cret"}},
		{name: "teacher created", args: []string{"adduser", "-name", "Bob", "-email", "BOB@Test.CD", "-role", "teacher"}, extra: extra{pwd: "s3cret"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			// the email is stored lowercased
			email := "alice@test.cd"
			if tt.name == "teacher created" {
				email = "bob@test.cd"
			}
			usr, err := cli.usrRepo.GetUserByEmail(email)
			if err != nil {
				t.Fatalf("GetUserByEmail() failed, %v", err)
			}
			if err = usr.CheckPassword("s3cret"); err != nil {
				t.Error("failed to set the prompted password")
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	for _, su := range seedUsers {
		usr, err := cli.usrRepo.GetUserByEmail(su.email)
		if err != nil {
			t.Fatalf("GetUserByEmail(%s) failed, %v", su.email, err)
		}
		if usr.Role != su.role {
			t.Errorf("seeded role = %v; want %v", usr.Role, su.role)
		}
		if err = usr.CheckPassword(su.pwd); err != nil {
			t.Errorf("seeded password for %s does not check out", su.email)
		}
	}

	// a second run is a no-op
	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("second cli.run() failed: %v", err)
	}
	all, err := cli.usrRepo.QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers() failed, %v", err)
	}
	if len(all) != len(seedUsers) {
		t.Errorf("second seed grew the user count to %d; want %d", len(all), len(seedUsers))
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	// no DB handle without the postgres engine
	if err := cli.run([]string{"admin", "migrate", "up"}); err != errNoMigrateDB {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errNoMigrateDB)
	}

	cli.db = sqlx.NewDb(new(sql.DB), "postgres")
	gooseRunFunc = func(db *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to requires a VERSION argument"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}
