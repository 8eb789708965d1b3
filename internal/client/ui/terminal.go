package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Terminal writes views to out. It is safe for concurrent use.
type Terminal struct {
	out io.Writer

	title *color.Color
	ok    *color.Color
	fail  *color.Color
	faint *color.Color
	link  *color.Color

	mu       sync.Mutex
	state    State
	signedIn bool
}

// NewTerminal returns a renderer writing to out; colorize=false emits plain
// text.
func NewTerminal(out io.Writer, colorize bool) *Terminal {
	t := &Terminal{
		out:   out,
		title: color.New(color.Bold),
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed, color.Bold),
		faint: color.New(color.Faint),
		link:  color.New(color.FgCyan, color.Underline),
		state: StateUnauthenticated,
	}
	for _, c := range []*color.Color{t.title, t.ok, t.fail, t.faint, t.link} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

func (t *Terminal) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Terminal) ShowAuthenticated(profile *models.Profile, claims models.Claims) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateAuthenticated
	t.signedIn = true

	t.ok.Fprintf(t.out, "Welcome, %s!\n", profile.Label())
	if profile != nil && profile.Mail != "" {
		fmt.Fprintf(t.out, "  mail: %s\n", profile.Mail)
	}
	t.writeClaims(claims)
}

func (t *Terminal) ShowUnauthenticated() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateUnauthenticated
	t.signedIn = false
	fmt.Fprintln(t.out, "You are not signed in. Type 'login' to sign in.")
}

func (t *Terminal) ShowClaims(claims models.Claims) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeClaims(claims)
}

func (t *Terminal) writeClaims(claims models.Claims) {
	if len(claims) == 0 {
		return
	}
	t.title.Fprintln(t.out, "ID token claims:")

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(t.out, "  %s: %v\n", k, claims[k])
	}
}

func (t *Terminal) ShowFileInfo(name, sizeKB string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateFileSelected
	fmt.Fprintf(t.out, "Selected file: %s (%s KB)\n", name, sizeKB)
}

func (t *Terminal) ClearFileInfo() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateFileSelected {
		t.state = t.restState()
	}
}

func (t *Terminal) restState() State {
	if t.signedIn {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

func (t *Terminal) ShowDownloadLink(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = t.restState()
	t.ok.Fprintln(t.out, "File uploaded successfully. Download link:")
	fmt.Fprint(t.out, "  ")
	t.link.Fprintln(t.out, url)
}

func (t *Terminal) ShowHistory(records []models.UploadRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.title.Fprintln(t.out, "Uploaded files:")
	if len(records) == 0 {
		t.faint.Fprintln(t.out, "  No files uploaded yet.")
		return
	}
	for _, r := range records {
		fmt.Fprintf(t.out, "  %s (%s KB)\n", r.Name, models.FormatKB(r.Size))
		t.faint.Fprintf(t.out, "    uploaded %s by %s\n", localDate(r.UploadDate), r.UserName)
		fmt.Fprint(t.out, "    ")
		t.link.Fprintln(t.out, r.DownloadURL)
	}
}

// localDate renders a stored UTC stamp in local time; unparseable stamps are
// shown as stored.
func localDate(stamp string) string {
	ts, err := time.Parse(models.TimestampLayout, stamp)
	if err != nil {
		return stamp
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

func (t *Terminal) ShowError(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateError
	t.fail.Fprintln(t.out, msg)
}

func (t *Terminal) ShowData(payload json.RawMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(payload) == 0 {
		t.faint.Fprintln(t.out, "No data.")
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		fmt.Fprintln(t.out, string(payload))
		return
	}
	fmt.Fprintln(t.out, buf.String())
}

func (t *Terminal) ShowInfo(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, msg)
}
