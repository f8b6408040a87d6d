// Command ballotctl is a small REST client for the ballotbox server, meant
// for operators and manual testing: registering users, managing the
// candidate roster, casting votes, and fetching the tally.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/voteworks/ballotbox/internal/logger"
	"github.com/voteworks/ballotbox/models"
)

const usage = `Usage: ballotctl <command> [flags]

Commands:
  signup            register a new voter account
  login             authenticate and print a bearer token
  profile           fetch the authenticated user's record
  candidate-create  add a candidate (admin only)
  candidate-update  change a candidate's details (admin only)
  candidate-delete  remove a candidate (admin only)
  candidate-list    list all candidates
  vote              cast the caller's single vote
  tally             print vote counts per candidate

Common flags:
  -addr   server address (default $BALLOTBOX_ADDRESS or localhost:8080)
  -token  bearer token (default $BALLOTBOX_TOKEN)
`

func main() {
	log := logger.NewLogger("ballotctl")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)

	addr := fs.String("addr", envOr("BALLOTBOX_ADDRESS", "localhost:8080"), "server address")
	token := fs.String("token", os.Getenv("BALLOTBOX_TOKEN"), "bearer token")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")

	var (
		name       = fs.String("name", "", "full name")
		age        = fs.Int("age", 0, "age in years")
		email      = fs.String("email", "", "email address")
		mobile     = fs.String("mobile", "", "mobile number")
		address    = fs.String("address", "", "postal address")
		gender     = fs.String("gender", "", "gender")
		nationalID = fs.String("national-id", "", "national identifier")
		password   = fs.String("password", "", "account password")
		party      = fs.String("party", "", "party affiliation")
		id         = fs.Int64("id", 0, "candidate ID")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cli, err := newAPIClient(*addr, *token, *timeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch command {
	case "signup":
		return printResult(cli.signup(ctx, models.User{
			Name:       *name,
			Age:        *age,
			Email:      *email,
			Mobile:     *mobile,
			Address:    *address,
			Gender:     *gender,
			NationalID: *nationalID,
			Password:   *password,
		}))

	case "login":
		return printResult(cli.login(ctx, *nationalID, *password))

	case "profile":
		return printResult(cli.profile(ctx))

	case "candidate-create":
		return printResult(cli.createCandidate(ctx, models.Candidate{
			Name:  *name,
			Party: *party,
			Age:   *age,
		}))

	case "candidate-update":
		var update models.CandidateUpdate
		if *name != "" {
			update.Name = name
		}
		if *party != "" {
			update.Party = party
		}
		if *age != 0 {
			update.Age = age
		}
		return printResult(cli.updateCandidate(ctx, *id, update))

	case "candidate-delete":
		return printResult(cli.deleteCandidate(ctx, *id))

	case "candidate-list":
		return printResult(cli.listCandidates(ctx))

	case "vote":
		return printResult(cli.castVote(ctx, *id))

	case "tally":
		return printResult(cli.tally(ctx))

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printResult(result any, err error) error {
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}

	fmt.Println(string(out))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
