package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/silopkg/silo/internal/adapters/manifest"
	"github.com/silopkg/silo/internal/build"
	"github.com/silopkg/silo/internal/core/domain"
)

type downloadFlags struct {
	url          string
	authToken    string
	channel      string
	target       string
	downloadDir  string
	identFile    string
	manifestFile string
	verify       bool
	debug        bool
	jobs         int
	retries      int
	retryDelay   time.Duration
}

func (c *CLI) newDownloadCmd() *cobra.Command {
	var flags downloadFlags

	cmd := &cobra.Command{
		Use:   "download [IDENT...]",
		Short: "Download packages and their dependencies from a depot",
		Long: `Download the named packages, their transitive dependencies, and the
public keys needed to verify them into a local download directory.

Idents take the form origin/name[/version[/release]]. Partial idents are
resolved to the latest release in the channel for the target. Idents can
also come from a plain file (--file) or a yaml manifest (--manifest).`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.SetDebug(flags.debug)

			req, err := buildRequest(cmd, args, flags)
			if err != nil {
				return err
			}

			_, err = c.app.Download(cmd.Context(), req)
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.url, "url", "u", "", "Depot URL (env: SILO_URL)")
	cmd.Flags().StringVarP(&flags.authToken, "auth", "z", "", "Depot auth token (env: SILO_AUTH_TOKEN)")
	cmd.Flags().StringVarP(&flags.channel, "channel", "c", "", "Release channel used to resolve partial idents (env: SILO_CHANNEL)")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Platform target, e.g. x86_64-linux (defaults to the host)")
	cmd.Flags().StringVar(&flags.downloadDir, "download-directory", "", "Directory to store artifacts and keys in")
	cmd.Flags().StringVar(&flags.identFile, "file", "", "File with one package ident per line")
	cmd.Flags().StringVar(&flags.manifestFile, "manifest", "", "Yaml manifest describing the download run")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Verify the signature of every artifact")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "Concurrent resolve and fetch workers (0 = one per CPU)")
	cmd.Flags().IntVar(&flags.retries, "retries", domain.DefaultRetryAttempts, "Download attempts per artifact")
	cmd.Flags().DurationVar(&flags.retryDelay, "retry-delay", domain.DefaultRetryDelay, "Fixed wait between download attempts")

	return cmd
}

// buildRequest assembles the run configuration from flags, environment and
// input files. Flags win over the manifest, which wins over defaults.
func buildRequest(cmd *cobra.Command, args []string, flags downloadFlags) (domain.DownloadRequest, error) {
	env := resolveEnv(cmd, flags)

	idents := make([]domain.PackageIdent, 0, len(args))
	for _, raw := range args {
		ident, err := domain.ParseIdent(raw)
		if err != nil {
			return domain.DownloadRequest{}, err
		}
		idents = append(idents, ident)
	}

	if flags.identFile != "" {
		fromFile, err := manifest.ReadIdentFile(flags.identFile)
		if err != nil {
			return domain.DownloadRequest{}, err
		}
		idents = append(idents, fromFile...)
	}

	channel := env.channel
	target := domain.Target{}
	if flags.target != "" {
		t, err := domain.ParseTarget(flags.target)
		if err != nil {
			return domain.DownloadRequest{}, err
		}
		target = t
	}

	if flags.manifestFile != "" {
		m, err := manifest.Load(flags.manifestFile)
		if err != nil {
			return domain.DownloadRequest{}, err
		}
		idents = append(idents, m.Idents...)
		if channel == "" {
			channel = m.Channel
		}
		if target == (domain.Target{}) {
			target = m.Target
		}
	}

	return domain.DownloadRequest{
		Idents:  idents,
		Target:  target,
		Channel: channel,
		Depot: domain.DepotConfig{
			URL:            env.url,
			AuthToken:      env.authToken,
			Product:        "silo",
			ProductVersion: build.Version,
		},
		Root:   flags.downloadDir,
		Verify: flags.verify,
		Retry: domain.RetryPolicy{
			Attempts: flags.retries,
			Delay:    flags.retryDelay,
		},
		Jobs: flags.jobs,
	}, nil
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "silo version %s\n", build.Version)
		},
	}
}
