package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/airenamify/dlgate/pkg/dlapi/config"
	"github.com/airenamify/dlgate/pkg/dlapi/services"
	"github.com/airenamify/dlgate/pkg/dlog"
	"github.com/airenamify/dlgate/pkg/resolve"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve an installer directly against the release bucket",
	Long: `Runs the same resolution as the download route against the bucket configured
in the environment and prints the chosen key, URL and strategy.`,
	Example: "  dlgate resolve --os mac --arch arm64",
	RunE:    runResolve,
}

var (
	resolveOS      string
	resolveArch    string
	resolveJSON    bool
	resolveVerbose bool
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveOS, "os", "", "Target platform (mac or win)")
	resolveCmd.Flags().StringVar(&resolveArch, "arch", "", "CPU architecture token, e.g. arm64 or x64")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the result as JSON")
	resolveCmd.Flags().BoolVarP(&resolveVerbose, "verbose", "v", false, "Log each resolution step")
	_ = resolveCmd.MarkFlagRequired("os")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.ValidateEnv()
	if err != nil {
		return err
	}

	logger := dlog.NewQuiet()
	if resolveVerbose {
		logger = dlog.NewVerbose()
	}

	svcs, err := services.NewServices(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	res, err := svcs.Resolver.Resolve(cmd.Context(), resolve.Query{OS: resolveOS, Arch: resolveArch})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if resolveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "platform: %s\n", res.Platform)
	if res.Arch != "" {
		fmt.Fprintf(out, "arch:     %s\n", res.Arch)
	}
	fmt.Fprintf(out, "source:   %s\n", res.Source)
	fmt.Fprintf(out, "key:      %s\n", res.Key)
	fmt.Fprintf(out, "url:      %s\n", res.URL)
	return nil
}
