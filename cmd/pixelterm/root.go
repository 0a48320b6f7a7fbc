package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/pixelterm/app"
	"github.com/lixenwraith/pixelterm/audio"
	"github.com/lixenwraith/pixelterm/peer"
)

var (
	debugFlag bool
	soundFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pixelterm",
	Short: "Layered pixel canvas for the terminal",
	Long: `pixelterm is a terminal-resident pixel canvas with brush, erase,
color-pick, pan, and text tools. Run it bare for standalone drawing,
or point two instances at the same relay to mirror edits live.

Keys: b brush, e erase, i ink, m move, t text, c palette, q quit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("")
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect HOST PORT",
	Short: "Join a drawing session on a running relay",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(net.JoinHostPort(args[0], args[1]))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve HOST PORT",
	Short: "Start the companion relay process, then join it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := spawnRelay(args[0], args[1]); err != nil {
			return fmt.Errorf("starting relay: %w", err)
		}
		return run(net.JoinHostPort(args[0], args[1]))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write diagnostics to logs/pixelterm.log")
	rootCmd.PersistentFlags().BoolVar(&soundFlag, "sound", false, "play feedback tones")
	rootCmd.AddCommand(connectCmd, serveCmd)
}

func run(addr string) error {
	logFile := setupLogging(debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	// The one allowed blocking/fatal path: bounded connect retries
	// before the terminal goes raw
	var session *peer.Session
	if addr != "" {
		s, err := peer.Connect(peer.DefaultConfig(addr))
		if err != nil {
			return err
		}
		session = s
		defer session.Close()
	}

	var sound *audio.Player
	if soundFlag {
		p, err := audio.NewPlayer()
		if err != nil {
			log.Printf("audio init failed, continuing silent: %v", err)
		} else {
			sound = p
			defer sound.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal even if the canvas crashes
	defer func() {
		if r := recover(); r != nil {
			emergencyReset(os.Stdout)
			// \r\n for raw mode compatibility
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mPIXELTERM CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	app.New(screen, session, sound).Run()
	return nil
}

// spawnRelay starts the pixeld companion detached from the terminal.
// The binary is looked up next to our own executable first, then on
// PATH. Connect retries cover its startup window.
func spawnRelay(host, port string) error {
	path, err := relayPath()
	if err != nil {
		return err
	}
	cmd := exec.Command(path, host, port)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Start()
}

func relayPath() (string, error) {
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), "pixeld")
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	return exec.LookPath("pixeld")
}

// emergencyReset force-restores the terminal with raw escape
// sequences, for crash paths where tcell's state is unknown
func emergencyReset(f *os.File) {
	f.WriteString("\x1b[?1003l\x1b[?1006l") // mouse tracking off
	f.WriteString("\x1b[?25h")              // cursor visible
	f.WriteString("\x1b[?1049l")            // leave alternate screen
	f.WriteString("\x1b[0m")                // reset attributes
	f.Sync()
}
