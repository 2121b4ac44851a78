package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pointcard/internal/api"
	"pointcard/internal/config"
	"pointcard/internal/dispatch"
	"pointcard/internal/logger"
	"pointcard/internal/models"
	"pointcard/internal/pointsinput"
	"pointcard/internal/profile"
	"pointcard/internal/prompt"
	"pointcard/internal/scanner"
	"pointcard/internal/session"
)

const passwordEnvVar = "POINTCARD_PASSWORD"

const usage = `usage: pointcard [flags] <command>

commands:
  login <email>            log in and store the auth token
  register <name> <email>  create an account
  logout                   drop the stored auth token
  whoami                   show the authenticated profile
  scan-add                 scan a barcode and add points
  scan-use                 scan a barcode and use points
  users                    list user records
  user-add <name> <email>  create a user record`

type App struct {
	cfg     *config.Config
	session *session.Store
	client  *api.Client
	loop    *dispatch.Loop

	in  *bufio.Scanner
	out io.Writer

	// message is UI-observable state; mutated only on the dispatch loop.
	message string
}

func New() (*App, error) {
	var err error
	app := &App{
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.session, err = session.New(app.cfg.TokenStorePath)
	if err != nil {
		return nil, err
	}

	app.client = api.New(
		app.cfg.HTTPClientTimeout,
		app.cfg.APIBaseURL,
		app.cfg.ShopLabel,
	)

	app.loop = dispatch.New(app.cfg.DispatchQueueCapacity)

	return app, nil
}

func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	command, rest := args[0], args[1:]

	switch command {
	case "login":
		return a.runLogin(rest)
	case "register":
		return a.runRegister(rest)
	case "logout":
		return a.runLogout()
	case "whoami":
		return a.runWhoami()
	case "scan-add":
		return a.runScan(models.DirectionAdd)
	case "scan-use":
		return a.runScan(models.DirectionUse)
	case "users":
		return a.runUsers()
	case "user-add":
		return a.runUserAdd(rest)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func (a *App) Close() {
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			fmt.Println("Session store close error:", err)
		}
	}

	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}

	return a.in.Text(), true
}

func (a *App) runLogin(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pointcard login <email>")
	}

	password, err := prompt.NewSource(passwordEnvVar).Get()
	if err != nil {
		return err
	}

	responseDTO, err := a.client.Login(context.Background(), args[0], password)
	if err != nil {
		return err
	}

	if err := a.session.SetToken(*responseDTO.Token); err != nil {
		return err
	}

	if responseDTO.Message != nil {
		fmt.Fprintln(a.out, *responseDTO.Message)
	} else {
		fmt.Fprintln(a.out, "logged in")
	}

	return nil
}

func (a *App) runRegister(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pointcard register <name> <email>")
	}

	password, err := prompt.NewSource(passwordEnvVar).Get()
	if err != nil {
		return err
	}

	responseDTO, err := a.client.Register(context.Background(), args[0], args[1], password)
	if err != nil {
		return err
	}

	if responseDTO.Message != nil {
		fmt.Fprintln(a.out, *responseDTO.Message)
	} else {
		fmt.Fprintln(a.out, "registered; log in to continue")
	}

	return nil
}

func (a *App) runLogout() error {
	if err := a.session.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "logged out")

	return nil
}

func (a *App) runWhoami() error {
	token := a.session.Token()
	if token == "" {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}

	raw, err := a.client.FetchUserData(context.Background(), token)
	if err != nil {
		return err
	}

	parsed := profile.Parse(raw)

	fmt.Fprintln(a.out, "point id:", parsed.PointID)
	for _, field := range parsed.Fields {
		fmt.Fprintf(a.out, "%s: %s\n", field.Name, formatField(field))
	}

	if expiresAt, ok := a.session.ExpiresAt(); ok {
		fmt.Fprintln(a.out, "token expires at:", expiresAt.Format(time.RFC3339))
	}

	return nil
}

func formatField(field profile.Field) string {
	switch field.Kind {
	case profile.KindNumber:
		return fmt.Sprintf("%v", field.Number)
	case profile.KindDate:
		return field.Date.Format("2006-01-02")
	default:
		return field.String
	}
}

// runScan drives the full transactional flow: one-shot barcode
// acquisition, digits-only amount entry, then a single authenticated
// submission whose result lands on the dispatch loop before being shown.
func (a *App) runScan(direction models.Direction) error {
	if a.session.Token() == "" {
		return models.ErrUnauthenticated
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.loop.Run(ctx)

	decoder := scanner.NewChannelDecoder(1)
	scanSession := scanner.NewSession(decoder)

	scanCtx, cancelScan := context.WithTimeout(ctx, a.cfg.ScanSessionTimeout)
	defer cancelScan()

	identifiers, err := scanSession.Start(scanCtx)
	if err != nil {
		return err
	}
	defer scanSession.Stop()

	fmt.Fprintln(a.out, "scan the barcode (or type it, `format:value`):")

	for {
		line, ok := a.readLine()
		if !ok {
			fmt.Fprintln(a.out, "no code scanned")
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		decoder.Emit(scanner.ParseLine(line))
		break
	}

	var pointID string
	select {
	case identifier, ok := <-identifiers:
		if !ok {
			fmt.Fprintln(a.out, "scan session ended without a code")
			return nil
		}
		pointID = identifier

	case <-scanCtx.Done():
		fmt.Fprintln(a.out, "scan session timed out")
		return nil
	}

	fmt.Fprintln(a.out, "scanned:", pointID)

	var amount int
	for {
		fmt.Fprint(a.out, "points: ")

		line, ok := a.readLine()
		if !ok {
			return nil
		}

		buffer := pointsinput.Sanitize(line)
		if !pointsinput.IsSubmittable(buffer) {
			fmt.Fprintln(a.out, "enter a positive number of points")
			continue
		}

		amount, err = pointsinput.Amount(buffer)
		if err != nil {
			return err
		}
		break
	}

	done := make(chan struct{})
	go func() {
		// The token slot is read at submission time, not cached earlier.
		message, err := a.client.SubmitPoints(ctx, pointID, amount, direction, a.session.Token())

		a.loop.Dispatch(func() {
			if err != nil {
				a.message = err.Error()
			} else {
				a.message = message
			}
			close(done)
		})
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil
	}

	fmt.Fprintln(a.out, a.message)

	return nil
}

func (a *App) runUsers() error {
	users, err := a.client.ListUsers(context.Background())
	if err != nil {
		return err
	}

	for _, usr := range users {
		name := ""
		if usr.Name != nil {
			name = *usr.Name
		}
		fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\n", usr.ID, usr.Email, name, usr.PointID)
	}

	return nil
}

func (a *App) runUserAdd(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pointcard user-add <name> <email>")
	}

	password, err := prompt.NewSource(passwordEnvVar).Get()
	if err != nil {
		return err
	}

	if err := a.client.CreateUser(context.Background(), args[0], args[1], password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "user created")

	return nil
}
