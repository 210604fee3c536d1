package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/enginehost/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [manifest]",
	Short: "Stream the engine's frames to SSH viewers",
	Long: `Start the engine and an SSH server. One driver steps the engine and
publishes every frame; each SSH session gets a read-only viewer.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses serve.host_key_path from the config

The server keeps running after the engine quits so viewers can still see
the last frame. Press Ctrl+C to stop.

Examples:
  enginehost serve scene.yaml
  enginehost serve scene.yaml --ssh :2222

Viewers connect with:
  ssh localhost -p 23235`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	addExtensionFlags(serveCmd)
}

func runServe(_ *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, sessionOptions{
		manifest:  manifestArg(args),
		extension: flagExtension,
		export:    flagExport,
	})
	if err != nil {
		fail("%v", err)
	}
	if s == nil {
		return
	}
	defer s.close()

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = s.cfg.Serve.Addr()
	sshCfg.HostKeyPath = s.cfg.Serve.HostKeyPath
	sshCfg.MaxSessions = s.cfg.Serve.MaxSessions
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}

	var slot tui.FrameSlot
	server, err := tui.NewSSHServer(sshCfg, &slot, s.log)
	if err != nil {
		fail("creating server: %v", err)
	}

	driveDone := make(chan error, 1)
	go func() {
		driveDone <- tui.Drive(ctx, s.host, &slot, s.cfg.Engine.FixedFPS, s.log)
	}()

	fmt.Printf("Streaming frames on %s\n", sshCfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		<-driveDone
		fail("server: %v", err)
	}

	// The driver is the only goroutine stepping the host; wait for it
	// before the deferred close tears the engine down.
	if err := <-driveDone; err != nil {
		s.log.Error("engine driver stopped", "err", err)
	}
}
