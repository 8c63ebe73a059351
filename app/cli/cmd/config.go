package cmd

import (
	"fmt"
	"strings"

	"article-planner/app/cli/api"
	"article-planner/app/cli/fs"
	"article-planner/app/cli/term"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(setHostCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the cli config",
	Args:  cobra.NoArgs,
	Run:   config,
}

var setHostCmd = &cobra.Command{
	Use:   "set-host [url]",
	Short: "Point the cli at a server",
	Args:  cobra.MaximumNArgs(1),
	Run:   setHost,
}

func config(cmd *cobra.Command, args []string) {
	color.New(color.Bold, term.ColorHiCyan).Println("⚙️  Config")
	fmt.Println("Server:", fs.ApiHost())
	fmt.Println("Config file:", fs.ConfigPath)
	fmt.Println("Log file:", fs.LogPath)
	fmt.Println()

	term.PrintCmds("", "config set-host")
}

func setHost(cmd *cobra.Command, args []string) {
	var host string
	if len(args) > 0 {
		host = args[0]
	} else {
		var err error
		host, err = term.GetRequiredUserStringInput("Server url:")
		if err != nil {
			term.OutputErrorAndExit("Error reading url: %v", err)
		}
	}

	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		term.OutputErrorAndExit("Invalid url %q: expected http:// or https://", host)
	}

	cfg, err := fs.LoadConfig()
	if err != nil {
		term.OutputErrorAndExit("Error loading config: %v", err)
	}

	cfg.Host = host
	err = fs.SaveConfig(cfg)
	if err != nil {
		term.OutputErrorAndExit("Error saving config: %v", err)
	}

	fmt.Println("✅ Server set to", host)

	term.StartSpinner("Checking server")
	apiErr := api.NewApi(host).Health()
	term.StopSpinner()

	if apiErr != nil {
		term.OutputSimpleError("Server isn't reachable yet: %s", apiErr.Message)
	}
}
