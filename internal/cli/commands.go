// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"sort"
	"strings"
)

// Command is a slash command available in the plain REPL.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/load <n|id>")
	Usage string

	// Handler executes the command. Returning false exits the REPL.
	Handler func(r *REPL, args []string) (bool, error)
}

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a registry with the built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command and its aliases.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		r.aliases[a] = cmd
	}
}

// Lookup finds a command by name or alias.
func (r *Registry) Lookup(name string) *Command {
	if c, ok := r.commands[name]; ok {
		return c
	}
	return r.aliases[name]
}

// Names returns all primary command names, sorted, for completion.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseResult is the outcome of parsing one input line.
type ParseResult struct {
	IsCommand   bool
	Command     *Command
	CommandName string
	Args        []string
	RawInput    string
}

// Parse splits a line into a command lookup and arguments. Lines not
// starting with "/" are plain queries.
func (r *Registry) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{RawInput: input}
	if !strings.HasPrefix(input, "/") {
		return result
	}
	result.IsCommand = true

	fields := strings.Fields(input)
	result.CommandName = fields[0]
	result.Args = fields[1:]
	result.Command = r.Lookup(result.CommandName)
	return result
}

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands",
		Handler: func(repl *REPL, _ []string) (bool, error) {
			repl.printHelp()
			return true, nil
		},
	})
	r.Register(&Command{
		Name:        "/sessions",
		Aliases:     []string{"/ls"},
		Description: "List chat sessions",
		Handler: func(repl *REPL, _ []string) (bool, error) {
			return true, repl.listSessions()
		},
	})
	r.Register(&Command{
		Name:        "/load",
		Description: "Switch to a chat session",
		Usage:       "/load <n|id>",
		Handler: func(repl *REPL, args []string) (bool, error) {
			if len(args) != 1 {
				return true, fmt.Errorf("usage: /load <n|id>")
			}
			return true, repl.loadSession(args[0])
		},
	})
	r.Register(&Command{
		Name:        "/new",
		Description: "Start a new chat",
		Handler: func(repl *REPL, _ []string) (bool, error) {
			repl.newSession()
			return true, nil
		},
	})
	r.Register(&Command{
		Name:        "/delete",
		Aliases:     []string{"/rm"},
		Description: "Delete a chat session",
		Usage:       "/delete <n|id>",
		Handler: func(repl *REPL, args []string) (bool, error) {
			if len(args) != 1 {
				return true, fmt.Errorf("usage: /delete <n|id>")
			}
			return true, repl.deleteSession(args[0])
		},
	})
	r.Register(&Command{
		Name:        "/rename",
		Description: "Rename a chat session",
		Usage:       "/rename <n|id> <title>",
		Handler: func(repl *REPL, args []string) (bool, error) {
			if len(args) < 2 {
				return true, fmt.Errorf("usage: /rename <n|id> <title>")
			}
			return true, repl.renameSession(args[0], strings.Join(args[1:], " "))
		},
	})
	r.Register(&Command{
		Name:        "/files",
		Description: "List uploaded documents",
		Handler: func(repl *REPL, _ []string) (bool, error) {
			return true, repl.listFiles()
		},
	})
	r.Register(&Command{
		Name:        "/upload",
		Description: "Upload documents",
		Usage:       "/upload <path>...",
		Handler: func(repl *REPL, args []string) (bool, error) {
			if len(args) == 0 {
				return true, fmt.Errorf("usage: /upload <path>...")
			}
			return true, repl.upload(args)
		},
	})
	r.Register(&Command{
		Name:        "/quota",
		Description: "Show upload quota",
		Handler: func(repl *REPL, _ []string) (bool, error) {
			return true, repl.showQuota()
		},
	})
	r.Register(&Command{
		Name:        "/export",
		Description: "Export the current chat",
		Usage:       "/export [md|txt|json]",
		Handler: func(repl *REPL, args []string) (bool, error) {
			format := "md"
			if len(args) > 0 {
				format = args[0]
			}
			return true, repl.export(format)
		},
	})
	r.Register(&Command{
		Name:        "/passwd",
		Description: "Change your password",
		Handler: func(repl *REPL, _ []string) (bool, error) {
			return true, repl.changePassword()
		},
	})
	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit",
		Handler: func(*REPL, []string) (bool, error) {
			return false, nil
		},
	})
}
