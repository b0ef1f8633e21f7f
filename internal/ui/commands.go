package ui

import (
	"strings"

	"github.com/eMattsJ/Availarr/internal/domain"
)

type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuit
	CommandProviders
	CommandConfig
	CommandLogs
	CommandSave
	CommandReload
	CommandTest
	CommandHelp
)

type Command struct {
	Type CommandType
	Args []string
}

func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)

	if !strings.HasPrefix(input, ":") {
		return Command{Type: CommandUnknown}
	}

	input = strings.TrimPrefix(input, ":")
	parts := strings.Fields(input)

	if len(parts) == 0 {
		return Command{Type: CommandUnknown}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "q", "quit":
		return Command{Type: CommandQuit, Args: args}
	case "p", "providers":
		return Command{Type: CommandProviders, Args: args}
	case "c", "config", "credentials":
		return Command{Type: CommandConfig, Args: args}
	case "l", "logs":
		return Command{Type: CommandLogs, Args: args}
	case "w", "save":
		return Command{Type: CommandSave, Args: args}
	case "r", "reload":
		return Command{Type: CommandReload, Args: args}
	case "t", "test":
		return Command{Type: CommandTest, Args: args}
	case "h", "help":
		return Command{Type: CommandHelp, Args: args}
	default:
		return Command{Type: CommandUnknown, Args: args}
	}
}

// TestTarget resolves the integration named by a :test command.
func (c Command) TestTarget() (domain.Integration, bool) {
	if c.Type != CommandTest || len(c.Args) == 0 {
		return "", false
	}

	switch strings.ToLower(c.Args[0]) {
	case "tmdb":
		return domain.IntegrationTMDB, true
	case "overseerr":
		return domain.IntegrationOverseerr, true
	case "discord":
		return domain.IntegrationDiscord, true
	}
	return "", false
}

// CommandRegistry maps commands and contextual shortcuts per view.
type CommandRegistry struct {
	shortcuts map[ViewState][]string
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		shortcuts: map[ViewState][]string{
			ViewProviders: {
				"space toggle",
				"m move",
				"/ search",
				"tab credentials",
				": command",
				"q quit",
			},
			ViewCredentials: {
				"tab next-field",
				"ctrl+t test",
				"ctrl+s save",
				"esc providers",
			},
		},
	}
}

func (r *CommandRegistry) GetContextualShortcuts(state ViewState) []string {
	return r.shortcuts[state]
}
