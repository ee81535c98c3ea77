package cmd

import (
	"fmt"

	"github.com/airenamify/dlgate/pkg/dlsdk"
	"github.com/airenamify/dlgate/pkg/dlsdk/dlerr"
	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Ask a running gateway which installer it serves",
	Long: `Queries the gateway's /api/releases/latest endpoint. The gateway address and
default os/arch come from dlgate.yaml, .dlgate/config.yaml or DLGATE_* variables.
Flags override all of them.`,
	RunE: runLatest,
}

var (
	latestConfigFile string
	latestVerbose    bool
)

func init() {
	rootCmd.AddCommand(latestCmd)
	addLatestFlags(latestCmd)
}

func addLatestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&latestConfigFile, "config", "", "Config file (default dlgate.yaml)")
	cmd.Flags().BoolVarP(&latestVerbose, "verbose", "v", false, "Report which config file was used")
	cmd.Flags().String("base-url", "", "Gateway base URL")
	cmd.Flags().String("os", "", "Target platform (mac or win)")
	cmd.Flags().String("arch", "", "CPU architecture token")
}

// loadLatestConfig layers the command's flags over the SDK config.
func loadLatestConfig(cmd *cobra.Command) (*dlsdk.Config, error) {
	cfg, err := dlsdk.LoadConfig(latestConfigFile)
	if err != nil {
		return nil, err
	}

	v := cfg.Viper()
	for key, flag := range map[string]string{
		dlsdk.BaseUrlKey: "base-url",
		dlsdk.OSKey:      "os",
		dlsdk.ArchKey:    "arch",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", flag, err)
		}
	}

	if err := cfg.Reload(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLatest(cmd *cobra.Command, args []string) error {
	cfg, err := loadLatestConfig(cmd)
	if err != nil {
		return err
	}
	if latestVerbose {
		used := cfg.ConfigFileUsed()
		if used == "" {
			used = "none"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "config: %s, gateway: %s\n", used, cfg.BaseURL)
	}
	if cfg.OS == "" {
		return fmt.Errorf("--os is required (or set os in %s.yaml)", dlsdk.ConfigName)
	}

	client := dlsdk.NewClient(cfg)
	rel, err := client.Latest(cmd.Context(), cfg.OS, cfg.Arch)
	if err != nil {
		if dlerr.IsCode(err, dlerr.CodeUnavailable) {
			return fmt.Errorf("gateway at %s is unreachable: %w", cfg.BaseURL, err)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), rel.URL)
	return nil
}
