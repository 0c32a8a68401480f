package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to cipherlab! Let's set up your playground.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Landing cipher.
	all := ciphers.All()
	names := make([]string, len(all))
	for i, c := range all {
		info := c.Info()
		names[i] = fmt.Sprintf("%-15s %s", info.ID, info.Name)
	}
	cipherPrompt := promptui.Select{
		Label: "Select the cipher opened by default",
		Items: names,
		Size:  len(names),
	}
	cipherIdx, _, err := cipherPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cipher selection: %w", err)
	}
	cfg.DefaultCipher = all[cipherIdx].Info().ID

	// 2. Animation speed.
	speedPrompt := promptui.Select{
		Label: "Select animation speed",
		Items: []string{
			"slow   (twice as long per step)",
			"normal",
			"fast   (half as long per step)",
		},
		CursorPos: 1,
	}
	speedIdx, _, err := speedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("speed selection: %w", err)
	}
	presets := []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast}
	cfg.Speed = GetSpeed(presets[speedIdx])

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port for cipherlab serve",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 4. Guided tour.
	tourPrompt := promptui.Select{
		Label: "Show the guided tour on first visit",
		Items: []string{"yes", "no"},
	}
	tourIdx, _, err := tourPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tour selection: %w", err)
	}
	cfg.Tour.AutoStart = tourIdx == 0

	// 5. Star count.
	starsPrompt := promptui.Select{
		Label: "Show the GitHub star count (one request to api.github.com)",
		Items: []string{"yes", "no"},
	}
	starsIdx, _, err := starsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("stars selection: %w", err)
	}
	cfg.StarsEnabled = starsIdx == 0

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// validatePort is the promptui validator for the port prompt.
func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
