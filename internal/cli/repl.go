// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/documind/documind-tui/internal/api"
	"github.com/documind/documind-tui/internal/chat"
	"github.com/documind/documind-tui/internal/export"
	"github.com/documind/documind-tui/internal/model"
	"github.com/documind/documind-tui/internal/session"
	"github.com/documind/documind-tui/internal/ui/styles"
	"github.com/documind/documind-tui/internal/upload"
	"github.com/documind/documind-tui/internal/util"
)

// REPL is the plain-terminal chat loop, for terminals where the full
// TUI is unwanted (documind --plain).
type REPL struct {
	client   *api.Client
	sess     *session.Session
	chatMgr  *chat.Manager
	uploads  *upload.Manager
	surfaces *Surfaces
	registry *Registry
	theme    *styles.Theme

	line        *liner.State
	historyFile string

	// Conversation mirror for /export.
	transcript []*model.Message
}

// New creates a REPL wired to managers through plain surfaces.
func New(client *api.Client, sess *session.Session, theme *styles.Theme) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &REPL{
		client:   client,
		sess:     sess,
		registry: NewRegistry(),
		theme:    theme,
		line:     line,
	}
	r.surfaces = NewSurfaces(os.Stdout, theme, r.readLine)
	r.surfaces.Link = client.DownloadURL
	r.chatMgr = chat.NewManager(client, sess, &recordingRenderer{r}, r.surfaces, r.surfaces, r.surfaces)
	r.uploads = upload.NewManager(client, r.surfaces, r.surfaces)

	if dir, err := util.DataDir(); err == nil {
		r.historyFile = filepath.Join(dir, "history")
		r.loadHistory()
	}

	line.SetCompleter(func(input string) []string {
		if !strings.HasPrefix(input, "/") {
			return nil
		}
		var out []string
		for _, name := range r.registry.Names() {
			if strings.HasPrefix(name, input) {
				out = append(out, name)
			}
		}
		return out
	})
	return r
}

// recordingRenderer mirrors the transcript for /export while the plain
// surfaces print each turn.
type recordingRenderer struct {
	r *REPL
}

func (rr *recordingRenderer) AppendMessage(m *model.Message) {
	rr.r.transcript = append(rr.r.transcript, m)
	rr.r.surfaces.AppendMessage(m)
}

func (rr *recordingRenderer) ClearMessages() {
	rr.r.transcript = nil
	rr.r.surfaces.ClearMessages()
}

func (rr *recordingRenderer) ShowWelcome() {
	rr.r.transcript = nil
	rr.r.surfaces.ShowWelcome()
}

// Close saves history and restores the terminal.
func (r *REPL) Close() {
	r.saveHistory()
	r.line.Close()
}

func (r *REPL) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

func (r *REPL) saveHistory() {
	if r.historyFile == "" {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

func (r *REPL) readLine(prompt string) (string, error) {
	return r.line.Prompt(prompt)
}

// readPassword reads without echo.
func (r *REPL) readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Run drives the REPL until /quit or EOF.
func (r *REPL) Run(ctx context.Context) error {
	if !r.sess.Authenticated() {
		if err := r.login(ctx); err != nil {
			return err
		}
	}

	r.surfaces.Info("Connected to " + r.client.BaseURL() + ". Type /help for commands.")
	r.chatMgr.NewSession(ctx)

	for {
		input, err := r.readLine("documind> ")
		if err != nil {
			// Ctrl+C or EOF both exit cleanly.
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		parsed := r.registry.Parse(input)
		if parsed.IsCommand {
			if parsed.Command == nil {
				r.surfaces.Error("Unknown command " + parsed.CommandName + ". Type /help.")
				continue
			}
			cont, err := parsed.Command.Handler(r, parsed.Args)
			if err != nil {
				r.surfaces.Error(err.Error())
			}
			if !cont {
				return nil
			}
			continue
		}

		if err := r.chatMgr.Send(ctx, input); err != nil {
			if r.dropToLogin(ctx, err) != nil {
				return nil
			}
		}
	}
}

// login prompts for credentials until they work or input ends.
func (r *REPL) login(ctx context.Context) error {
	for {
		username, err := r.readLine("Username: ")
		if err != nil {
			return err
		}
		password, err := r.readPassword("Password: ")
		if err != nil {
			return err
		}
		username = strings.TrimSpace(username)
		if username == "" || password == "" {
			r.surfaces.Error("Username and password are required")
			continue
		}

		creds, err := r.client.Login(ctx, username, password)
		if err != nil {
			r.surfaces.Error("Login failed: " + err.Error())
			continue
		}
		r.sess.SetCredentials(creds)
		r.surfaces.Success("Signed in as " + creds.Username)
		return nil
	}
}

// dropToLogin re-authenticates after a 401 cleared the token.
func (r *REPL) dropToLogin(ctx context.Context, err error) error {
	if !api.IsAuthError(err) {
		return nil
	}
	return r.login(ctx)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.surfaces.Out, r.theme.FormTitle.Render("Commands"))
	for _, name := range r.registry.Names() {
		cmd := r.registry.Lookup(name)
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		fmt.Fprintf(r.surfaces.Out, "  %-22s %s\n", usage, cmd.Description)
	}
}

func (r *REPL) listSessions() error {
	ctx := context.Background()
	if err := r.chatMgr.ListSessions(ctx); err != nil {
		return err
	}
	sessions, activeID := r.surfaces.Sessions()
	if len(sessions) == 0 {
		r.surfaces.Info("No chats yet")
		return nil
	}
	for i, c := range sessions {
		marker := "  "
		if c.ID == activeID {
			marker = "* "
		}
		title := c.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(r.surfaces.Out, "%s%2d. %s\n", marker, i+1, title)
	}
	return nil
}

func (r *REPL) loadSession(arg string) error {
	c, ok := r.surfaces.SessionByArg(arg)
	if !ok {
		return fmt.Errorf("no such session %q; run /sessions first", arg)
	}
	return r.chatMgr.LoadSession(context.Background(), c.ID)
}

func (r *REPL) deleteSession(arg string) error {
	c, ok := r.surfaces.SessionByArg(arg)
	if !ok {
		return fmt.Errorf("no such session %q; run /sessions first", arg)
	}
	return r.chatMgr.DeleteSession(context.Background(), c.ID, c.Title)
}

func (r *REPL) renameSession(arg, title string) error {
	c, ok := r.surfaces.SessionByArg(arg)
	if !ok {
		return fmt.Errorf("no such session %q; run /sessions first", arg)
	}
	return r.chatMgr.RenameSession(context.Background(), c.ID, title)
}

func (r *REPL) newSession() {
	r.chatMgr.NewSession(context.Background())
}

func (r *REPL) listFiles() error {
	files, quota, err := r.uploads.ListFiles(context.Background())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.surfaces.Info("No documents uploaded yet")
	}
	for _, f := range files {
		fmt.Fprintf(r.surfaces.Out, "  %-40s %10s  %s\n",
			util.TruncateWidth(f.Filename, 40), util.FormatBytes(f.Size), f.UploadedBy)
	}
	r.printQuota(quota)
	return nil
}

func (r *REPL) upload(paths []string) error {
	if !r.sess.CanUpload() {
		return fmt.Errorf("your account cannot upload documents")
	}
	files := make([]upload.File, 0, len(paths))
	for _, p := range paths {
		f, err := upload.FromPath(p)
		if err != nil {
			return err
		}
		files = append(files, f)
	}
	r.uploads.OnProgress = func(i, total int, name string) {
		fmt.Fprintf(r.surfaces.Out, "  [%d/%d] %s\n", i, total, name)
	}
	r.uploads.Upload(context.Background(), files)
	return nil
}

func (r *REPL) showQuota() error {
	q, err := r.uploads.Quota(context.Background())
	if err != nil {
		return err
	}
	r.printQuota(q)
	return nil
}

func (r *REPL) printQuota(q api.Quota) {
	if q.Unlimited() {
		r.surfaces.Info("Upload quota: unlimited")
		return
	}
	r.surfaces.Info("Upload quota: " + q.QuotaString)
}

func (r *REPL) export(format string) error {
	if len(r.transcript) == 0 {
		return fmt.Errorf("nothing to export")
	}
	conv := model.NewConversation(r.sess.CurrentChatID(), "")
	for _, m := range r.transcript {
		conv.Append(m)
	}

	opts := export.DefaultOptions()
	var path string
	var err error
	switch format {
	case "md", "markdown":
		path, err = export.ExportMarkdown(conv, opts)
	case "txt", "text":
		path, err = export.ExportText(conv, opts)
	case "json":
		path, err = export.ExportJSON(conv, opts)
	default:
		return fmt.Errorf("unknown format %q (md, txt, json)", format)
	}
	if err != nil {
		return err
	}
	r.surfaces.Success("Exported to " + path)
	return nil
}

func (r *REPL) changePassword() error {
	current, err := r.readPassword("Current password: ")
	if err != nil {
		return err
	}
	next, err := r.readPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := r.readPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	switch {
	case current == "" || next == "" || confirm == "":
		return fmt.Errorf("all fields are required")
	case len(next) < 6:
		return fmt.Errorf("new password must be at least 6 characters")
	case next != confirm:
		return fmt.Errorf("new passwords do not match")
	}
	if err := r.client.ChangePassword(context.Background(), current, next); err != nil {
		return err
	}
	r.surfaces.Success("Password changed")
	return nil
}
