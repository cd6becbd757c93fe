package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/chartthread/internal/config"
	"github.com/jfmyers9/chartthread/internal/daemon"
	"github.com/spf13/cobra"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install chartthread daemon as a launchd agent",
	Long: `Install chartthread daemon as a launchd agent that runs automatically on login.

This command will:
  - Generate a launchd plist file for the chartthread daemon
  - Install it to ~/Library/LaunchAgents/
  - Load the agent with launchctl
  - Start the daemon automatically

The agent runs in ~/.config/chartthread, so put the .env file with the
Spotify and X credentials there before installing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get the path to the current executable
		binaryPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		// Resolve symlinks to get the actual binary path
		binaryPath, err = filepath.EvalSymlinks(binaryPath)
		if err != nil {
			return fmt.Errorf("failed to resolve executable path: %w", err)
		}

		logPath, err := daemon.GetDefaultLogPath()
		if err != nil {
			return fmt.Errorf("failed to get log path: %w", err)
		}
		if err := os.MkdirAll(logPath, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		workDir := config.GetConfigDir()
		if _, err := os.Stat(filepath.Join(workDir, ".env")); os.IsNotExist(err) {
			fmt.Printf("Warning: %s not found, the daemon will only see launchd's environment\n",
				filepath.Join(workDir, ".env"))
		}

		plistContent, err := daemon.GeneratePlist(daemon.PlistConfig{
			BinaryPath:       binaryPath,
			LogPath:          logPath,
			WorkingDirectory: workDir,
		})
		if err != nil {
			return fmt.Errorf("failed to generate plist: %w", err)
		}

		plistPath, err := daemon.GetPlistPath()
		if err != nil {
			return fmt.Errorf("failed to get plist path: %w", err)
		}

		// Create LaunchAgents directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(plistPath), 0755); err != nil {
			return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
		}

		// Check if plist already exists
		if _, err := os.Stat(plistPath); err == nil {
			fmt.Println("Daemon is already installed. Uninstalling first...")
			if err := unloadDaemon(); err != nil {
				fmt.Printf("Warning: failed to unload existing daemon: %v\n", err)
			}
		}

		if err := os.WriteFile(plistPath, []byte(plistContent), 0644); err != nil {
			return fmt.Errorf("failed to write plist file: %w", err)
		}

		fmt.Printf("✓ Installed plist to %s\n", plistPath)

		if err := loadDaemon(plistPath); err != nil {
			return fmt.Errorf("failed to load daemon: %w", err)
		}

		fmt.Println("✓ Daemon loaded and started successfully")
		fmt.Printf("✓ Logs will be written to %s\n", logPath)
		fmt.Println("\nThe chartthread daemon is now running and will start automatically on login.")
		fmt.Println("\nYou can check the daemon status with:")
		fmt.Println("  launchctl list | grep chartthread")
		fmt.Println("\nTo uninstall, run:")
		fmt.Println("  chartthread uninstall")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}

// launchdDomain returns the gui/<uid> domain of the current user
func launchdDomain() (string, error) {
	out, err := exec.Command("id", "-u").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get user ID: %w", err)
	}
	return "gui/" + strings.TrimSpace(string(out)), nil
}

// loadDaemon loads the daemon using launchctl
func loadDaemon(plistPath string) error {
	domain, err := launchdDomain()
	if err != nil {
		return err
	}

	output, err := exec.Command("launchctl", "bootstrap", domain, plistPath).CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("launchctl bootstrap failed: %s", strings.TrimSpace(string(output)))
		}
		return fmt.Errorf("failed to run launchctl bootstrap: %w", err)
	}

	return nil
}

// unloadDaemon unloads the daemon using launchctl
func unloadDaemon() error {
	domain, err := launchdDomain()
	if err != nil {
		return err
	}

	serviceName := fmt.Sprintf("%s/%s", domain, daemon.LaunchdLabel)
	output, err := exec.Command("launchctl", "bootout", serviceName).CombinedOutput()
	if err != nil && len(output) > 0 {
		// Bootout fails when the agent is not loaded, which is OK
		fmt.Printf("Warning: %s\n", strings.TrimSpace(string(output)))
	}

	return nil
}
